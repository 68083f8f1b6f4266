// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// AdminHandler handles game-state reads and administrative toggles.
type AdminHandler struct {
	deps Dependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps Dependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

// HandleGameState handles GET /api/game-state requests. This endpoint is
// public: clients poll it to learn whether submissions are open.
func (h *AdminHandler) HandleGameState(w http.ResponseWriter, r *http.Request) {
	state, err := h.deps.GameState(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleToggleLock handles POST /api/lock requests (admin only).
func (h *AdminHandler) HandleToggleLock(w http.ResponseWriter, r *http.Request) {
	state, err := h.deps.ToggleLock(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"locked": state.Locked})
}

// HandleReset handles POST /api/reset requests (admin only).
func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
