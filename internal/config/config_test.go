package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("port: got %d, want default 8000", cfg.Server.Port)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
vision:
  provider: ollama
  payload_format: webp
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Vision.Provider != "ollama" {
		t.Errorf("vision provider: got %s, want ollama", cfg.Vision.Provider)
	}
	// Untouched values keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("model: got %s, want default gpt-4o-mini", cfg.OpenAI.Model)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("KHETI_PORT", "7777")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("port: got %d, want 7777", cfg.Server.Port)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Error("API key not taken from environment")
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad provider", func(c *Config) { c.Vision.Provider = "carrier-pigeon" }},
		{"bad payload format", func(c *Config) { c.Vision.PayloadFormat = "bmp" }},
		{"bad tts backend", func(c *Config) { c.Speech.TTSBackend = "festival" }},
		{"bad temperature", func(c *Config) { c.OpenAI.Temperature = 5 }},
		{"bad upload cap", func(c *Config) { c.Upload.MaxBytes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestVoice_Fallback(t *testing.T) {
	speech := Default().Speech
	if v := speech.Voice("ur"); v != "ur-PK-UzmaNeural" {
		t.Errorf("ur voice: got %s", v)
	}
	if v := speech.Voice("fr"); v != "en-US-JennyNeural" {
		t.Errorf("fallback voice: got %s, want English default", v)
	}
}
