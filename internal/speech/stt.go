// Package speech wraps the speech collaborators: Whisper transcription on
// the way in, and pluggable text-to-speech synthesis on the way out. No
// audio decoding or encoding happens here beyond probing MP3 durations;
// codec work is the external services' job.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Transcriber converts recorded speech to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// WhisperTranscriber transcribes audio through the OpenAI Whisper API.
type WhisperTranscriber struct {
	client *openai.Client
}

// NewWhisperTranscriber builds a transcriber on an existing OpenAI client
// configuration.
func NewWhisperTranscriber(apiKey, baseURL string) (*WhisperTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("speech: missing OpenAI API key")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &WhisperTranscriber{client: openai.NewClientWithConfig(cfg)}, nil
}

// Transcribe sends the audio bytes to Whisper and returns the transcript.
// The filename is only a container-format hint for the API ("voice.wav",
// "note.mp3"); the bytes themselves are streamed from memory.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("speech: empty audio input")
	}
	if filename == "" {
		filename = "audio.wav"
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("transcription: empty transcript")
	}
	return text, nil
}
