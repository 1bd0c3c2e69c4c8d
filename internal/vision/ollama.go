package vision

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/khetiai/kheti-server/internal/imaging"
)

// ollamaTimeout bounds requests without a caller deadline. Local vision
// models on CPU can take minutes per image.
const ollamaTimeout = 300 * time.Second

// OllamaAnalyzer runs crop analysis against a local Ollama server, for
// deployments without cloud access.
type OllamaAnalyzer struct {
	client *api.Client
	model  string
}

// NewOllamaAnalyzer builds an analyzer talking to the Ollama server at
// serverURL. Any path on the URL is discarded; the API client appends its
// own routes.
func NewOllamaAnalyzer(serverURL, model string) (*OllamaAnalyzer, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("vision: invalid ollama URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("vision: ollama URL %q missing scheme or host", serverURL)
	}
	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}

	return &OllamaAnalyzer{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
	}, nil
}

// Analyze sends the raw image bytes with the measurement prompt and parses
// the model's JSON verdict.
func (a *OllamaAnalyzer) Analyze(ctx context.Context, payload *imaging.VisionPayload, featureContext, language string) (*CropAnalysis, error) {
	if payload == nil {
		return nil, fmt.Errorf("vision: nil payload")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ollamaTimeout)
		defer cancel()
	}

	imgBytes, err := payload.Bytes()
	if err != nil {
		return nil, fmt.Errorf("vision: decode payload: %w", err)
	}

	stream := false
	req := &api.ChatRequest{
		Model: a.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: analysisPrompt(featureContext, language),
				Images:  []api.ImageData{api.ImageData(imgBytes)},
			},
		},
		Stream: &stream,
	}

	var reply string
	err = a.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply = resp.Message.Content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat: %w", err)
	}
	if reply == "" {
		return nil, fmt.Errorf("ollama chat: empty response")
	}

	return parseAnalysis(reply), nil
}
