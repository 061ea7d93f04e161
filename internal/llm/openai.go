package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/sashabaranov/go-openai"
)

// OpenAICompatible talks to any OpenAI-style chat completions endpoint
// (OpenAI itself, Groq).
type OpenAICompatible struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenAICompatible(baseURL, model string, httpClient *http.Client) *OpenAICompatible {
	return &OpenAICompatible{baseURL: baseURL, model: model, httpClient: httpClient}
}

// NewOpenAIClient builds a go-openai client bound to one caller's key.
// An empty baseURL means api.openai.com.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return openai.NewClientWithConfig(cfg)
}

func (c *OpenAICompatible) Complete(ctx context.Context, apiKey string, req domain.CompletionRequest) (string, error) {
	client := NewOpenAIClient(apiKey, c.baseURL, c.httpClient)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature:         req.Temperature,
		TopP:                req.TopP,
		MaxCompletionTokens: req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
