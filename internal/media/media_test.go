package media

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

func chatResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":     "1",
		"object": "chat.completion",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
	})
	return string(b)
}

func TestVisionOCR_ExtractText(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Content []struct {
				Type     string `json:"type"`
				Text     string `json:"text"`
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse("BREAKING:\n  5G towers   spread viruses")))
	}))
	defer srv.Close()

	ocr := NewVisionOCR(srv.URL, "", srv.Client(), zap.NewNop())
	text, err := ocr.ExtractText(context.Background(), "key", pngHeader, "")
	require.NoError(t, err)
	assert.Equal(t, "BREAKING: 5G towers spread viruses", text)

	assert.Equal(t, DefaultVisionModel, got.Model)
	require.Len(t, got.Messages, 1)
	require.Len(t, got.Messages[0].Content, 2)
	assert.Equal(t, "text", got.Messages[0].Content[0].Type)
	assert.True(t, strings.HasPrefix(got.Messages[0].Content[1].ImageURL.URL, "data:image/png;base64,"))
}

func TestVisionOCR_ExtractText_Empty(t *testing.T) {
	ocr := NewVisionOCR("http://unused", "", nil, zap.NewNop())
	_, err := ocr.ExtractText(context.Background(), "key", nil, "image/png")
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestVisionOCR_ExtractText_NoText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse("   ")))
	}))
	defer srv.Close()

	ocr := NewVisionOCR(srv.URL, "", srv.Client(), zap.NewNop())
	_, err := ocr.ExtractText(context.Background(), "key", pngHeader, "image/png")
	assert.ErrorIs(t, err, ErrNoText)
}

func TestTranscriber_Transcribe(t *testing.T) {
	var model, filename, audio string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		model = r.FormValue("model")
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		filename = hdr.Filename
		b, _ := io.ReadAll(f)
		audio = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" The earth is flat. "}`))
	}))
	defer srv.Close()

	tr := NewTranscriber(srv.URL, "", srv.Client(), zap.NewNop())
	text, err := tr.Transcribe(context.Background(), "key", "clip.mp3", strings.NewReader("RIFFdata"))
	require.NoError(t, err)
	assert.Equal(t, "The earth is flat.", text)
	assert.Equal(t, DefaultTranscriptionModel, model)
	assert.Equal(t, "clip.mp3", filename)
	assert.Equal(t, "RIFFdata", audio)
}

func TestTranscriber_Transcribe_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":""}`))
	}))
	defer srv.Close()

	tr := NewTranscriber(srv.URL, "", srv.Client(), zap.NewNop())
	_, err := tr.Transcribe(context.Background(), "key", "a.wav", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestDeepfakeClient_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"is_fake":true,"confidence":0.9712}`))
	}))
	defer srv.Close()

	c := NewDeepfakeClient(srv.URL, srv.Client(), zap.NewNop())
	res, err := c.Classify(context.Background(), pngHeader, "")
	require.NoError(t, err)
	assert.True(t, res.IsFake)
	assert.Equal(t, "Confidence: 97.12% (Fake)", res.Label())
}

func TestDeepfakeClient_Classify_NotConfigured(t *testing.T) {
	c := NewDeepfakeClient("", nil, zap.NewNop())
	_, err := c.Classify(context.Background(), pngHeader, "image/png")
	assert.ErrorIs(t, err, ErrClassifierNotConfigured)
}

func TestDeepfakeClient_Classify_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewDeepfakeClient(srv.URL, srv.Client(), zap.NewNop())
	_, err := c.Classify(context.Background(), pngHeader, "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestDeepfakeClient_Classify_ConfidenceOutOfRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"is_fake":false,"confidence":97.1}`))
	}))
	defer srv.Close()

	c := NewDeepfakeClient(srv.URL, srv.Client(), zap.NewNop())
	_, err := c.Classify(context.Background(), pngHeader, "image/png")
	assert.Error(t, err)
}
