package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	// LLMKeyHeader lets a caller supply their own language model key.
	LLMKeyHeader = "X-LLM-API-Key"
	// MediaKeyHeader carries the caller's key for OCR and transcription.
	MediaKeyHeader = "X-Media-API-Key"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// llmKey prefers the caller's key over the server default.
func llmKey(r *http.Request, fallback string) string {
	return headerKey(r, LLMKeyHeader, fallback)
}

func headerKey(r *http.Request, header, fallback string) string {
	if k := strings.TrimSpace(r.Header.Get(header)); k != "" {
		return k
	}
	return fallback
}
