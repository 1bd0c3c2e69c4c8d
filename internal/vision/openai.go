package vision

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/khetiai/kheti-server/internal/config"
	"github.com/khetiai/kheti-server/internal/imaging"
)

// OpenAIAnalyzer runs crop analysis through the OpenAI multimodal chat API.
type OpenAIAnalyzer struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIAnalyzer builds an analyzer from the OpenAI configuration.
func NewOpenAIAnalyzer(cfg config.OpenAIConfig) (*OpenAIAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vision: missing OpenAI API key")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIAnalyzer{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Analyze sends the image as a data-URI chat part alongside the measurement
// prompt and parses the model's JSON verdict.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, payload *imaging.VisionPayload, featureContext, language string) (*CropAnalysis, error) {
	if payload == nil {
		return nil, fmt.Errorf("vision: nil payload")
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: analysisPrompt(featureContext, language),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    payload.DataURI(),
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision completion: empty response")
	}

	return parseAnalysis(resp.Choices[0].Message.Content), nil
}
