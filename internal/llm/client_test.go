package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	response string
	err      error
	requests []domain.CompletionRequest
	keys     []string
}

func (s *stubCompleter) Complete(ctx context.Context, apiKey string, req domain.CompletionRequest) (string, error) {
	s.requests = append(s.requests, req)
	s.keys = append(s.keys, apiKey)
	return s.response, s.err
}

func TestClient_FormulateQuery_UsesQuerySampling(t *testing.T) {
	stub := &stubCompleter{response: "  \"COVID vaccine infertility evidence\"  "}
	client := NewFactCheckClient(stub)

	query, err := client.FormulateQuery(context.Background(), "key-1", "COVID vaccines cause infertility")
	require.NoError(t, err)
	assert.Equal(t, "COVID vaccine infertility evidence", query)

	require.Len(t, stub.requests, 1)
	req := stub.requests[0]
	assert.Equal(t, queryPrompt, req.System)
	assert.Equal(t, "COVID vaccines cause infertility", req.User)
	assert.InDelta(t, 0.2, req.Temperature, 0.0001)
	assert.InDelta(t, 0.95, req.TopP, 0.0001)
	assert.Equal(t, 4096, req.MaxTokens)
	assert.Equal(t, []string{"key-1"}, stub.keys)
}

func TestClient_FormulateQuery_StripsReasoning(t *testing.T) {
	stub := &stubCompleter{response: "<think>\nThe user wants...\n</think>\n\nmoon landing 1969 hoax"}
	client := NewFactCheckClient(stub)

	query, err := client.FormulateQuery(context.Background(), "k", "The moon landing was faked")
	require.NoError(t, err)
	assert.Equal(t, "moon landing 1969 hoax", query)
}

func TestClient_FormulateQuery_EmptyCompletion(t *testing.T) {
	stub := &stubCompleter{response: "<think>only thoughts</think>"}
	client := NewFactCheckClient(stub)

	_, err := client.FormulateQuery(context.Background(), "k", "claim")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestClient_FormulateQuery_CompleterError(t *testing.T) {
	upstream := errors.New("401 invalid api key")
	client := NewFactCheckClient(&stubCompleter{err: upstream})

	_, err := client.FormulateQuery(context.Background(), "bad", "claim")
	assert.ErrorIs(t, err, upstream)
	assert.Contains(t, err.Error(), "formulate query")
}

func TestClient_ScoreClaim_BuildsGradingRequest(t *testing.T) {
	stub := &stubCompleter{response: "```text\nScore: 1 - Completely False\n```"}
	client := NewFactCheckClient(stub)

	verdict, err := client.ScoreClaim(context.Background(), "key-2", "Vaccines cause infertility", "\nWeb Search:\n• WHO: no link (Source: https://who.int)")
	require.NoError(t, err)
	assert.Equal(t, "Score: 1 - Completely False", verdict)

	require.Len(t, stub.requests, 1)
	req := stub.requests[0]
	assert.Equal(t, gradingPrompt, req.System)
	assert.True(t, strings.HasPrefix(req.User, "Here is the claim from the user: Vaccines cause infertility and here is the search results: "))
	assert.Contains(t, req.User, "(Source: https://who.int)")
	assert.True(t, strings.HasSuffix(req.User, "Cite supporting links from the following search results only"))
	assert.InDelta(t, 0.5, req.Temperature, 0.0001)
	assert.InDelta(t, 0.95, req.TopP, 0.0001)
	assert.Equal(t, 4096, req.MaxTokens)
}

func TestClient_ScoreClaim_CompleterError(t *testing.T) {
	client := NewFactCheckClient(&stubCompleter{err: errors.New("rate limited")})

	_, err := client.ScoreClaim(context.Background(), "k", "claim", "evidence")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score claim: rate limited")
}

func TestCleanCompletion(t *testing.T) {
	assert.Equal(t, "answer", cleanCompletion("<THINK>x</THINK>answer"))
	assert.Equal(t, "answer", cleanCompletion("```\nanswer\n```"))
	assert.Equal(t, "", cleanCompletion("   "))
}

func TestOpenAICompatible_Complete(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompatible(srv.URL, "qwen/qwen3-32b", srv.Client())
	out, err := c.Complete(context.Background(), "secret", domain.CompletionRequest{
		System: "sys", User: "usr", Temperature: 0.5, TopP: 0.95, MaxTokens: 4096,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "qwen/qwen3-32b", got["model"])
	assert.InDelta(t, 0.5, got["temperature"], 0.0001)
	assert.InDelta(t, 0.95, got["top_p"], 0.0001)
	assert.EqualValues(t, 4096, got["max_completion_tokens"])

	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "usr", msgs[1].(map[string]any)["content"])
}

func TestOpenAICompatible_Complete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	c := NewOpenAICompatible(srv.URL, "m", srv.Client())
	_, err := c.Complete(context.Background(), "bad", domain.CompletionRequest{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key")
}

func TestAnthropicClient_Complete(t *testing.T) {
	var got anthropicRequest
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		require.NoError(t, json.Unmarshal(body, &raw))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"graded"}]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(srv.URL, "claude", srv.Client())
	out, err := c.Complete(context.Background(), "secret", domain.CompletionRequest{
		System: "sys", User: "usr", Temperature: 0.2, TopP: 0.95, MaxTokens: 4096,
	})
	require.NoError(t, err)
	assert.Equal(t, "graded", out)
	assert.Equal(t, "sys", got.System)
	assert.Equal(t, 4096, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "usr", got.Messages[0].Content)
	assert.InDelta(t, 0.2, raw["temperature"], 0.0001)
	assert.NotContains(t, raw, "top_p")
}

func TestAnthropicClient_Complete_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"type":"permission_error","message":"nope"}}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(srv.URL, "claude", srv.Client())
	_, err := c.Complete(context.Background(), "k", domain.CompletionRequest{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestNewClient(t *testing.T) {
	for _, p := range []string{ProviderGroq, ProviderOpenAI, ProviderAnthropic, ProviderMock} {
		c, err := NewClient(p, "", nil)
		require.NoError(t, err, p)
		assert.NotNil(t, c)
	}

	_, err := NewClient("gemini", "", nil)
	assert.Error(t, err)
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, DefaultGroqModel, DefaultModel(ProviderGroq))
	assert.Equal(t, DefaultGroqModel, DefaultModel(""))
	assert.Equal(t, DefaultOpenAIModel, DefaultModel(ProviderOpenAI))
	assert.Equal(t, DefaultAnthropicModel, DefaultModel(ProviderAnthropic))
	assert.Equal(t, "claude-haiku-4-5", DefaultAnthropicModel)
}

func TestMockClient_TracksCalls(t *testing.T) {
	m := NewMockClient()
	m.ScoreClaimError = errors.New("boom")

	q, err := m.FormulateQuery(context.Background(), "k", "c")
	require.NoError(t, err)
	assert.Equal(t, "mock search query", q)

	_, err = m.ScoreClaim(context.Background(), "k", "c", "e")
	assert.Error(t, err)

	f, s := m.CallCounts()
	assert.Equal(t, 1, f)
	assert.Equal(t, 1, s)

	m.Reset()
	f, s = m.CallCounts()
	assert.Zero(t, f)
	assert.Zero(t, s)
}
