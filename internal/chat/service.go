// Package chat provides the conversational assistant backed by a chat
// completion model, with agriculture-specific system prompts per language.
package chat

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/khetiai/kheti-server/internal/config"
)

// Message is one turn of a conversation, role "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service answers farmer questions through the configured chat model.
// It is stateless between calls; conversation history, when the caller has
// any, is passed in full on each request.
type Service struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewService builds a chat service from the OpenAI configuration.
func NewService(cfg config.OpenAIConfig) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("chat: missing OpenAI API key")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Service{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete sends the conversation to the model, prefixed with the
// language-appropriate agricultural system prompt, and returns the reply
// text.
func (s *Service) Complete(ctx context.Context, messages []Message, language string) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt(language),
	})
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    chatMessages,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
