package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"go.uber.org/zap"
)

var ErrClassifierNotConfigured = errors.New("deepfake classifier URL not configured")

// DeepfakeClient posts images to an external real/fake classifier.
// The server replies with {"is_fake": bool, "confidence": float}.
type DeepfakeClient struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewDeepfakeClient(url string, httpClient *http.Client, logger *zap.Logger) *DeepfakeClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &DeepfakeClient{url: url, httpClient: httpClient, logger: logger}
}

func (c *DeepfakeClient) Classify(ctx context.Context, image []byte, mimeType string) (*domain.DeepfakeResult, error) {
	if c.url == "" {
		return nil, ErrClassifierNotConfigured
	}
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="image"`)
	header.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, fmt.Errorf("create classifier request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result domain.DeepfakeResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal classifier response: %w", err)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("classifier confidence out of range: %v", result.Confidence)
	}

	c.logger.Debug("classified image",
		zap.Bool("is_fake", result.IsFake),
		zap.Float64("confidence", result.Confidence))
	return &result, nil
}
