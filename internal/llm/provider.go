package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Harshitk-cp/veritas/internal/domain"
)

// Provider constants
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

const (
	GroqBaseURL = "https://api.groq.com/openai/v1"

	DefaultGroqModel      = "qwen/qwen3-32b"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-haiku-4-5"
)

// Completer sends a single chat completion using the caller's API key.
type Completer interface {
	Complete(ctx context.Context, apiKey string, req domain.CompletionRequest) (string, error)
}

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderAnthropic:
		return DefaultAnthropicModel
	default:
		return DefaultGroqModel
	}
}

// NewClient creates the fact-check LLM client for a provider name.
// Keys are not taken here; every call carries its own.
func NewClient(provider, model string, httpClient *http.Client) (domain.LLMClient, error) {
	if model == "" {
		model = DefaultModel(provider)
	}

	switch provider {
	case ProviderGroq:
		return NewFactCheckClient(NewOpenAICompatible(GroqBaseURL, model, httpClient)), nil

	case ProviderOpenAI:
		return NewFactCheckClient(NewOpenAICompatible("", model, httpClient)), nil

	case ProviderAnthropic:
		return NewFactCheckClient(NewAnthropicClient("", model, httpClient)), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (valid options: groq, openai, anthropic, mock)", provider)
	}
}
