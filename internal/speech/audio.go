package speech

import (
	"bytes"
	"encoding/base64"
	"fmt"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// bytesPerSample is the size of one decoded PCM frame: 16-bit stereo.
const bytesPerSample = 4

// MP3Duration decodes the MP3 header chain and reports the playback length
// in seconds. The audio is decoded lazily; only frame headers are walked, so
// this is cheap enough to run on every synthesized reply.
func MP3Duration(audio []byte) (float64, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(audio))
	if err != nil {
		return 0, fmt.Errorf("mp3 probe: %w", err)
	}
	rate := dec.SampleRate()
	if rate <= 0 {
		return 0, fmt.Errorf("mp3 probe: invalid sample rate %d", rate)
	}
	return float64(dec.Length()) / float64(bytesPerSample*rate), nil
}

// Envelope is the JSON-transportable form of a synthesized reply: the audio
// encoded as base64 plus enough metadata for the client to play it without
// probing.
type Envelope struct {
	AudioBase64 string  `json:"audio_base64"`
	Format      string  `json:"format"`
	Duration    float64 `json:"duration_seconds"`
}

// NewEnvelope wraps MP3 audio bytes for JSON transport. Duration probing is
// best-effort; a malformed stream still ships with duration zero rather than
// failing the whole reply.
func NewEnvelope(audio []byte) Envelope {
	duration, err := MP3Duration(audio)
	if err != nil {
		duration = 0
	}
	return Envelope{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Format:      "mp3",
		Duration:    duration,
	}
}
