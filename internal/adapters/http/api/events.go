// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	service "github.com/o4villegas/gameday-bingo/internal/app"
	"github.com/o4villegas/gameday-bingo/internal/domain/game"
)

// EventsHandler handles outcome reads and toggles.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleGetOutcomes handles GET /api/events requests. The response is the
// full outcome map; ids absent from the map have not occurred.
func (h *EventsHandler) HandleGetOutcomes(w http.ResponseWriter, r *http.Request) {
	outcomes, err := h.deps.Outcomes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	if outcomes == nil {
		outcomes = game.Outcomes{}
	}
	writeJSON(w, http.StatusOK, outcomes)
}

// HandleToggle handles PUT /api/events/{id} requests (admin only). The
// response carries the full updated map so clients need no follow-up read.
func (h *EventsHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	outcomes, err := h.deps.ToggleOutcome(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEvent) {
			writeError(w, http.StatusBadRequest, ErrUnknownEvent)
			return
		}
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, outcomes)
}
