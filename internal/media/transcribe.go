package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Harshitk-cp/veritas/internal/llm"
	"github.com/Harshitk-cp/veritas/internal/textclean"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const DefaultTranscriptionModel = "whisper-large-v3"

var ErrEmptyTranscript = errors.New("transcription is empty")

// Transcriber turns speech into text through an OpenAI-compatible audio endpoint.
type Transcriber struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewTranscriber(baseURL, model string, httpClient *http.Client, logger *zap.Logger) *Transcriber {
	if model == "" {
		model = DefaultTranscriptionModel
	}
	return &Transcriber{baseURL: baseURL, model: model, httpClient: httpClient, logger: logger}
}

func (t *Transcriber) Transcribe(ctx context.Context, apiKey, filename string, audio io.Reader) (string, error) {
	if filename == "" {
		filename = "audio.wav"
	}

	client := llm.NewOpenAIClient(apiKey, t.baseURL, t.httpClient)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: filename,
		Reader:   audio,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	text := textclean.Clean(resp.Text, 0)
	if text == "" {
		return "", ErrEmptyTranscript
	}

	t.logger.Debug("transcribed audio",
		zap.String("filename", filename),
		zap.Int("text_len", len(text)))
	return text, nil
}
