package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/Harshitk-cp/veritas/internal/llm"
	"github.com/Harshitk-cp/veritas/internal/textclean"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	DefaultVisionModel = "meta-llama/llama-4-scout-17b-16e-instruct"

	ocrPrompt = "Extract all text visible in this image. Return only the extracted text, without commentary. If the image contains no text, return nothing."
)

var (
	ErrEmptyImage = errors.New("image is empty")
	ErrNoText     = errors.New("no text found in image")
)

// VisionOCR extracts text from images with a multimodal chat model.
type VisionOCR struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewVisionOCR(baseURL, model string, httpClient *http.Client, logger *zap.Logger) *VisionOCR {
	if model == "" {
		model = DefaultVisionModel
	}
	return &VisionOCR{baseURL: baseURL, model: model, httpClient: httpClient, logger: logger}
}

func (v *VisionOCR) ExtractText(ctx context.Context, apiKey string, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyImage
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	client := llm.NewOpenAIClient(apiKey, v.baseURL, v.httpClient)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: v.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: ocrPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURI}},
				},
			},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision API returned no choices")
	}

	text := textclean.Clean(resp.Choices[0].Message.Content, 0)
	if text == "" {
		return "", ErrNoText
	}

	v.logger.Debug("extracted text from image",
		zap.Int("image_bytes", len(image)),
		zap.Int("text_len", len(text)))
	return text, nil
}
