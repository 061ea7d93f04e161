package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/media"
	"go.uber.org/zap"
)

// MediaHandler verifies claims found in images and audio, and screens
// images with the deepfake classifier.
type MediaHandler struct {
	verifier    Verifier
	ocr         domain.ImageTextExtractor
	transcriber domain.AudioTranscriber
	deepfake    domain.DeepfakeClassifier
	llmKey      string
	mediaKey    string
	shareLLMKey bool
	maxUpload   int64
	logger      *zap.Logger
}

func NewMediaHandler(
	v Verifier,
	ocr domain.ImageTextExtractor,
	tr domain.AudioTranscriber,
	df domain.DeepfakeClassifier,
	llmKey, mediaKey string,
	shareLLMKey bool,
	maxUpload int64,
	logger *zap.Logger,
) *MediaHandler {
	return &MediaHandler{
		verifier:    v,
		ocr:         ocr,
		transcriber: tr,
		deepfake:    df,
		llmKey:      llmKey,
		mediaKey:    mediaKey,
		shareLLMKey: shareLLMKey,
		maxUpload:   maxUpload,
		logger:      logger,
	}
}

type deepfakeResponse struct {
	IsFake     bool    `json:"is_fake"`
	Confidence float64 `json:"confidence"`
	Label      string  `json:"label"`
}

func (h *MediaHandler) VerifyImage(w http.ResponseWriter, r *http.Request) {
	image, mimeType, ok := h.readUpload(w, r, "image")
	if !ok {
		return
	}

	text, err := h.ocr.ExtractText(r.Context(), h.mediaAPIKey(r), image, mimeType)
	if err != nil {
		if errors.Is(err, media.ErrNoText) {
			writeError(w, http.StatusUnprocessableEntity, "no text found in image")
			return
		}
		h.logger.Error("image text extraction failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "could not extract text from image")
		return
	}

	writeCheckResult(w, h.verifier.Run(r.Context(), text, llmKey(r, h.llmKey)))
}

func (h *MediaHandler) VerifyAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer func() { _ = file.Close() }()

	text, err := h.transcriber.Transcribe(r.Context(), h.mediaAPIKey(r), header.Filename, file)
	if err != nil {
		if errors.Is(err, media.ErrEmptyTranscript) {
			writeError(w, http.StatusUnprocessableEntity, "no speech found in audio")
			return
		}
		h.logger.Error("audio transcription failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "could not transcribe audio")
		return
	}

	writeCheckResult(w, h.verifier.Run(r.Context(), text, llmKey(r, h.llmKey)))
}

func (h *MediaHandler) Deepfake(w http.ResponseWriter, r *http.Request) {
	image, mimeType, ok := h.readUpload(w, r, "image")
	if !ok {
		return
	}

	result, err := h.deepfake.Classify(r.Context(), image, mimeType)
	if err != nil {
		if errors.Is(err, media.ErrClassifierNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "deepfake detection is not configured")
			return
		}
		h.logger.Error("deepfake classification failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "could not classify image")
		return
	}

	writeJSON(w, http.StatusOK, deepfakeResponse{
		IsFake:     result.IsFake,
		Confidence: result.Confidence,
		Label:      result.Label(),
	})
}

// mediaAPIKey resolves the key for the OCR and transcription endpoint. A
// caller's LLM key is only reused when both go to the same provider.
func (h *MediaHandler) mediaAPIKey(r *http.Request) string {
	if k := headerKey(r, MediaKeyHeader, ""); k != "" {
		return k
	}
	if h.shareLLMKey {
		return llmKey(r, h.mediaKey)
	}
	return h.mediaKey
}

func (h *MediaHandler) readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, header, err := r.FormFile(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, field+" file is required")
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return nil, "", false
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, field+" file is empty")
		return nil, "", false
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, true
}
