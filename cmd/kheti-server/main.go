package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/khetiai/kheti-server/internal/chat"
	"github.com/khetiai/kheti-server/internal/config"
	"github.com/khetiai/kheti-server/internal/server"
	"github.com/khetiai/kheti-server/internal/speech"
	"github.com/khetiai/kheti-server/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing so they work without
	// a valid configuration.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("kheti-server %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("kheti-server - KhetiAI agricultural assistant backend")
			fmt.Println()
			fmt.Println("Usage: kheti-server [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --config PATH    Path to YAML configuration file")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  OPENAI_API_KEY          API key for chat, Whisper and vision")
			fmt.Println("  KHETI_HOST, KHETI_PORT  HTTP listener address")
			fmt.Println("  KHETI_VISION_PROVIDER   openai or ollama")
			fmt.Println("  KHETI_OLLAMA_URL        Ollama server URL")
			return
		}
	}

	configPath := flag.String("config", "config.yaml", "path to YAML configuration file")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	log.Printf("KhetiAI Backend v%s (built %s, commit %s), env %s", Version, BuildTime, GitCommit, cfg.App.Environment)

	srv := server.New(cfg, buildChat(cfg), buildAnalyzer(cfg), buildTranscriber(cfg), buildSynthesizer(cfg), Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("shutdown complete")
}

// buildChat returns the chat service, or nil when no API key is configured.
// Routes that need a missing collaborator answer 503.
func buildChat(cfg *config.Config) server.ChatService {
	svc, err := chat.NewService(cfg.OpenAI)
	if err != nil {
		log.Printf("chat disabled: %v", err)
		return nil
	}
	return svc
}

func buildAnalyzer(cfg *config.Config) vision.Analyzer {
	switch cfg.Vision.Provider {
	case "ollama":
		model := cfg.Vision.Model
		if model == "" {
			model = "llama3.2-vision"
		}
		a, err := vision.NewOllamaAnalyzer(cfg.Vision.OllamaURL, model)
		if err != nil {
			log.Printf("vision disabled: %v", err)
			return nil
		}
		return a
	default:
		visionCfg := cfg.OpenAI
		if cfg.Vision.Model != "" {
			visionCfg.Model = cfg.Vision.Model
		}
		a, err := vision.NewOpenAIAnalyzer(visionCfg)
		if err != nil {
			log.Printf("vision disabled: %v", err)
			return nil
		}
		return a
	}
}

func buildTranscriber(cfg *config.Config) speech.Transcriber {
	t, err := speech.NewWhisperTranscriber(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
	if err != nil {
		log.Printf("transcription disabled: %v", err)
		return nil
	}
	return t
}

func buildSynthesizer(cfg *config.Config) speech.Synthesizer {
	if cfg.Speech.TTSBackend == "openai" {
		s, err := speech.NewOpenAISynthesizer(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
		if err != nil {
			log.Printf("speech synthesis disabled: %v", err)
			return nil
		}
		return s
	}
	return speech.NewEdgeSynthesizer(&cfg.Speech)
}
