package speech

import (
	"context"
	"encoding/base64"
	"testing"
)

func TestNewWhisperTranscriber_RequiresKey(t *testing.T) {
	if _, err := NewWhisperTranscriber("", ""); err == nil {
		t.Error("expected error for missing API key")
	}
	if _, err := NewWhisperTranscriber("sk-test", ""); err != nil {
		t.Errorf("unexpected error with key set: %v", err)
	}
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	tr, err := NewWhisperTranscriber("sk-test", "")
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	if _, err := tr.Transcribe(context.Background(), nil, "voice.wav"); err == nil {
		t.Error("expected error for empty audio")
	}
}

func TestNewOpenAISynthesizer_RequiresKey(t *testing.T) {
	if _, err := NewOpenAISynthesizer("", ""); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestSynthesize_EmptyText(t *testing.T) {
	s, err := NewOpenAISynthesizer("sk-test", "")
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	if _, err := s.Synthesize(context.Background(), "", "en"); err == nil {
		t.Error("expected error for empty text")
	}

	edge := NewEdgeSynthesizer(fixedVoice("en-US-JennyNeural"))
	if _, err := edge.Synthesize(context.Background(), "", "en"); err == nil {
		t.Error("expected error for empty text")
	}
}

type fixedVoice string

func (v fixedVoice) Voice(string) string { return string(v) }

func TestMP3Duration_Malformed(t *testing.T) {
	if _, err := MP3Duration([]byte("not an mp3 stream")); err == nil {
		t.Error("expected error for malformed stream")
	}
}

func TestNewEnvelope_MalformedStillEncodes(t *testing.T) {
	audio := []byte{0x01, 0x02, 0x03}
	env := NewEnvelope(audio)

	if env.Format != "mp3" {
		t.Errorf("format: got %q, want mp3", env.Format)
	}
	if env.Duration != 0 {
		t.Errorf("duration for malformed stream: got %v, want 0", env.Duration)
	}
	decoded, err := base64.StdEncoding.DecodeString(env.AudioBase64)
	if err != nil {
		t.Fatalf("decode envelope audio: %v", err)
	}
	if len(decoded) != len(audio) {
		t.Errorf("round trip length: got %d, want %d", len(decoded), len(audio))
	}
}
