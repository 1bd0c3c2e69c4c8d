// Package config loads and validates the server configuration.
//
// Configuration comes from three layers, later layers overriding earlier
// ones: built-in defaults, an optional YAML file, and environment variables
// (with a .env file loaded first when present). Secrets such as the OpenAI
// API key are environment-only and never read from the YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the server.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Server ServerConfig `yaml:"server"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Vision VisionConfig `yaml:"vision"`
	Speech SpeechConfig `yaml:"speech"`
	Upload UploadConfig `yaml:"upload"`
}

// AppConfig identifies the service.
type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// OpenAIConfig holds credentials and model selection for the OpenAI-backed
// collaborators (chat, Whisper STT, vision when the openai provider is
// selected).
type OpenAIConfig struct {
	APIKey      string  `yaml:"-"` // env only: OPENAI_API_KEY
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// VisionConfig selects and configures the vision-analysis provider.
type VisionConfig struct {
	// Provider is "openai" or "ollama".
	Provider string `yaml:"provider"`

	// Model overrides the chat model for vision calls (e.g. a local
	// multimodal model name when Provider is "ollama").
	Model string `yaml:"model"`

	// OllamaURL is the base URL of the Ollama server when Provider is
	// "ollama".
	OllamaURL string `yaml:"ollama_url"`

	// PayloadFormat is "jpeg" or "webp".
	PayloadFormat string `yaml:"payload_format"`
}

// SpeechConfig configures speech synthesis and recognition.
type SpeechConfig struct {
	// TTSBackend is "edge" or "openai".
	TTSBackend string `yaml:"tts_backend"`

	// Voices maps a language code to the synthesizer voice used for it.
	Voices map[string]string `yaml:"voices"`
}

// UploadConfig bounds incoming files.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// Default returns a configuration with working defaults for everything
// except the OpenAI API key.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "KhetiAI Backend",
			Environment: "development",
			Debug:       true,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://127.0.0.1:5173",
			},
		},
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   500,
		},
		Vision: VisionConfig{
			Provider:      "openai",
			PayloadFormat: "jpeg",
			OllamaURL:     "http://localhost:11434",
		},
		Speech: SpeechConfig{
			TTSBackend: "edge",
			Voices: map[string]string{
				"en": "en-US-JennyNeural",
				"ur": "ur-PK-UzmaNeural",
			},
		},
		Upload: UploadConfig{
			MaxBytes: 10 * 1024 * 1024,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// the environment. A missing file is not an error; an unreadable or invalid
// one is. The .env file in the working directory is loaded first when
// present so OPENAI_API_KEY can live there during development.
func Load(path string) (*Config, error) {
	// Best effort: absence of .env is the normal production case.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("KHETI_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("KHETI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("KHETI_ENV"); v != "" {
		c.App.Environment = v
	}
	if v := os.Getenv("KHETI_VISION_PROVIDER"); v != "" {
		c.Vision.Provider = v
	}
	if v := os.Getenv("KHETI_OLLAMA_URL"); v != "" {
		c.Vision.OllamaURL = v
	}
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Upload.MaxBytes < 1 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	switch c.Vision.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("vision.provider must be openai or ollama, got %q", c.Vision.Provider)
	}
	switch c.Vision.PayloadFormat {
	case "jpeg", "webp":
	default:
		return fmt.Errorf("vision.payload_format must be jpeg or webp, got %q", c.Vision.PayloadFormat)
	}
	switch c.Speech.TTSBackend {
	case "edge", "openai":
	default:
		return fmt.Errorf("speech.tts_backend must be edge or openai, got %q", c.Speech.TTSBackend)
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("openai.temperature must be between 0 and 2, got %.2f", c.OpenAI.Temperature)
	}
	return nil
}

// Addr returns the host:port string for the HTTP listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Voice returns the TTS voice for a language, falling back to English.
func (c *SpeechConfig) Voice(language string) string {
	if v, ok := c.Voices[language]; ok {
		return v
	}
	return c.Voices["en"]
}
