package domain

import (
	"context"
	"fmt"
	"io"
)

// DeepfakeResult is the output of the binary image classifier.
type DeepfakeResult struct {
	IsFake     bool    `json:"is_fake"`
	Confidence float64 `json:"confidence"`
}

// Label renders the result the way the UI shows it, e.g. "Confidence: 97.12% (Fake)".
func (r DeepfakeResult) Label() string {
	kind := "Real"
	if r.IsFake {
		kind = "Fake"
	}
	return fmt.Sprintf("Confidence: %.2f%% (%s)", r.Confidence*100, kind)
}

type ImageTextExtractor interface {
	ExtractText(ctx context.Context, apiKey string, image []byte, mimeType string) (string, error)
}

type AudioTranscriber interface {
	Transcribe(ctx context.Context, apiKey, filename string, audio io.Reader) (string, error)
}

type DeepfakeClassifier interface {
	Classify(ctx context.Context, image []byte, mimeType string) (*DeepfakeResult, error)
}
