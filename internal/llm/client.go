package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Harshitk-cp/veritas/internal/domain"
)

var (
	ErrEmptyCompletion = errors.New("model returned an empty completion")

	thinkBlockRe = regexp.MustCompile(`(?is)<think>.*?</think>`)
)

const (
	queryTemperature = 0.2
	scoreTemperature = 0.5
	defaultTopP      = 0.95
	maxOutputTokens  = 4096
)

// Client implements the query formulation and truth scoring stages on top
// of any Completer.
type Client struct {
	completer Completer
}

func NewFactCheckClient(c Completer) *Client {
	return &Client{completer: c}
}

func (c *Client) FormulateQuery(ctx context.Context, apiKey, claim string) (string, error) {
	result, err := c.completer.Complete(ctx, apiKey, domain.CompletionRequest{
		System:      queryPrompt,
		User:        claim,
		Temperature: queryTemperature,
		TopP:        defaultTopP,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("formulate query: %w", err)
	}

	query := strings.Trim(cleanCompletion(result), "\"'` \n")
	if query == "" {
		return "", fmt.Errorf("formulate query: %w", ErrEmptyCompletion)
	}
	return query, nil
}

func (c *Client) ScoreClaim(ctx context.Context, apiKey, claim, evidence string) (string, error) {
	result, err := c.completer.Complete(ctx, apiKey, domain.CompletionRequest{
		System:      gradingPrompt,
		User:        fmt.Sprintf(scoreUserTemplate, claim, evidence),
		Temperature: scoreTemperature,
		TopP:        defaultTopP,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("score claim: %w", err)
	}

	verdict := cleanCompletion(result)
	if verdict == "" {
		return "", fmt.Errorf("score claim: %w", ErrEmptyCompletion)
	}
	return verdict, nil
}

// cleanCompletion drops reasoning blocks emitted by reasoning models and
// strips markdown fences around the answer.
func cleanCompletion(s string) string {
	s = thinkBlockRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
