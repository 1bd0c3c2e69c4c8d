package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
	"github.com/wujunwei928/edge-tts-go/edge_tts"
)

// Synthesizer converts reply text to spoken audio (MP3 bytes).
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// VoicePicker maps a language code to a synthesizer voice.
type VoicePicker interface {
	Voice(language string) string
}

// EdgeSynthesizer synthesizes speech through the Microsoft Edge TTS service.
// It needs no API key, which keeps voice replies working even when only the
// chat credentials are configured.
type EdgeSynthesizer struct {
	voices VoicePicker
}

// NewEdgeSynthesizer builds an Edge TTS synthesizer with the given voice
// mapping.
func NewEdgeSynthesizer(voices VoicePicker) *EdgeSynthesizer {
	return &EdgeSynthesizer{voices: voices}
}

// Synthesize renders the text with the language's configured neural voice
// and returns the MP3 stream.
func (s *EdgeSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("speech: empty text")
	}

	conn, err := edge_tts.NewCommunicate(text, edge_tts.SetVoice(s.voices.Voice(language)))
	if err != nil {
		return nil, fmt.Errorf("edge tts connect: %w", err)
	}

	audio, err := conn.Stream()
	if err != nil {
		return nil, fmt.Errorf("edge tts stream: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("edge tts: empty audio")
	}
	return audio, nil
}

// OpenAISynthesizer synthesizes speech through the OpenAI audio API. Used
// when a single-vendor deployment is preferred over Edge TTS.
type OpenAISynthesizer struct {
	client *openai.Client
}

// NewOpenAISynthesizer builds an OpenAI TTS synthesizer.
func NewOpenAISynthesizer(apiKey, baseURL string) (*OpenAISynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("speech: missing OpenAI API key")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAISynthesizer{client: openai.NewClientWithConfig(cfg)}, nil
}

// Synthesize renders the text as MP3. The voice is fixed; OpenAI voices are
// not language-specific the way Edge neural voices are.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("speech: empty text")
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.VoiceAlloy,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai tts: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("openai tts read: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("openai tts: empty audio")
	}
	return audio, nil
}
