package llm

import (
	"context"
	"sync"
)

// MockClient is a configurable LLM client for testing.
// Set the response fields to control what each method returns.
type MockClient struct {
	mu sync.Mutex

	FormulateQueryResponse string
	FormulateQueryError    error
	ScoreClaimResponse     string
	ScoreClaimError        error

	// Call tracking for assertions
	FormulateQueryCalls []FormulateQueryCall
	ScoreClaimCalls     []ScoreClaimCall
}

type FormulateQueryCall struct {
	APIKey string
	Claim  string
}

type ScoreClaimCall struct {
	APIKey   string
	Claim    string
	Evidence string
}

func NewMockClient() *MockClient {
	return &MockClient{
		FormulateQueryResponse: "mock search query",
		ScoreClaimResponse:     "Score: 0\nMock verdict",
	}
}

func (c *MockClient) FormulateQuery(ctx context.Context, apiKey, claim string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.FormulateQueryCalls = append(c.FormulateQueryCalls, FormulateQueryCall{APIKey: apiKey, Claim: claim})
	if c.FormulateQueryError != nil {
		return "", c.FormulateQueryError
	}
	return c.FormulateQueryResponse, nil
}

func (c *MockClient) ScoreClaim(ctx context.Context, apiKey, claim, evidence string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ScoreClaimCalls = append(c.ScoreClaimCalls, ScoreClaimCall{APIKey: apiKey, Claim: claim, Evidence: evidence})
	if c.ScoreClaimError != nil {
		return "", c.ScoreClaimError
	}
	return c.ScoreClaimResponse, nil
}

// CallCounts returns the number of recorded calls per stage.
func (c *MockClient) CallCounts() (formulate, score int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.FormulateQueryCalls), len(c.ScoreClaimCalls)
}

// Reset clears all recorded calls and resets responses to defaults.
func (c *MockClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.FormulateQueryResponse = "mock search query"
	c.FormulateQueryError = nil
	c.ScoreClaimResponse = "Score: 0\nMock verdict"
	c.ScoreClaimError = nil
	c.FormulateQueryCalls = nil
	c.ScoreClaimCalls = nil
}
