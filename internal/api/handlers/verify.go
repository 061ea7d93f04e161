package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/veritas/internal/domain"
)

const maxClaimBodyBytes = 64 << 10

// Verifier runs a claim through the verification pipeline.
type Verifier interface {
	Run(ctx context.Context, claim, apiKey string) *domain.CheckResult
}

type VerifyHandler struct {
	verifier   Verifier
	defaultKey string
}

func NewVerifyHandler(v Verifier, defaultKey string) *VerifyHandler {
	return &VerifyHandler{verifier: v, defaultKey: defaultKey}
}

type verifyRequest struct {
	Claim string `json:"claim"`
}

func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxClaimBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := h.verifier.Run(r.Context(), req.Claim, llmKey(r, h.defaultKey))
	writeCheckResult(w, res)
}

// writeCheckResult maps a pipeline result onto the HTTP response: input
// errors are the caller's fault, model failures are a bad gateway.
func writeCheckResult(w http.ResponseWriter, res *domain.CheckResult) {
	if !res.Failed() {
		writeJSON(w, http.StatusOK, res)
		return
	}

	var inputErr *domain.InputError
	switch {
	case errors.As(res.Err, &inputErr):
		writeError(w, http.StatusBadRequest, res.Error)
	default:
		writeError(w, http.StatusBadGateway, res.Error)
	}
}
