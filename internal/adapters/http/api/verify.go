// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/o4villegas/gameday-bingo/internal/verify"
)

// VerifyHandler handles the AI verification workflow (admin only).
type VerifyHandler struct {
	deps Dependencies
}

// NewVerifyHandler creates a new verify handler.
func NewVerifyHandler(deps Dependencies) *VerifyHandler {
	return &VerifyHandler{deps: deps}
}

// verifyRequest mirrors the JSON schema for POST /api/verify. ManualText,
// when set, bypasses the upstream game-data fetch.
type verifyRequest struct {
	Period     string `json:"period"`
	ManualText string `json:"manualText"`
}

// HandleRun handles POST /api/verify requests.
func (h *VerifyHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest)
		return
	}

	result, err := h.deps.RunVerification(r.Context(), req.Period, req.ManualText)
	if err != nil {
		writeError(w, statusForVerify(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleStatus handles GET /api/verify/status requests.
func (h *VerifyHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	state, err := h.deps.VerificationStatus(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	if state.AppliedResults == nil {
		state.AppliedResults = []verify.Result{}
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleApprove handles POST /api/verify/approve requests. The response is
// the full updated outcome map.
func (h *VerifyHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	outcomes, err := h.deps.ApproveVerification(r.Context())
	if err != nil {
		writeError(w, statusForVerify(err), err)
		return
	}
	writeJSON(w, http.StatusOK, outcomes)
}

// HandleDismiss handles POST /api/verify/dismiss requests.
func (h *VerifyHandler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DismissVerification(r.Context()); err != nil {
		writeError(w, statusForVerify(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// statusForVerify maps verification errors to HTTP statuses.
func statusForVerify(err error) int {
	switch {
	case errors.Is(err, verify.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, verify.ErrPendingApproval):
		return http.StatusConflict
	case errors.Is(err, verify.ErrNothingPending):
		return http.StatusBadRequest
	case errors.Is(err, verify.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, verify.ErrMissingAPIKey), errors.Is(err, verify.ErrNoSourceConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, verify.ErrBadAnalyzerOutput):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
