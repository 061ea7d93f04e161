package domain

import "context"

// CompletionRequest is a single system+user chat completion.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// LLMClient covers the two language model stages of the pipeline.
// The API key is passed on every call; clients hold no caller credentials.
type LLMClient interface {
	FormulateQuery(ctx context.Context, apiKey, claim string) (string, error)
	ScoreClaim(ctx context.Context, apiKey, claim, evidence string) (string, error)
}
