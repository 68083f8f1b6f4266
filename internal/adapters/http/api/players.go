// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/o4villegas/gameday-bingo/internal/domain/game"
	"github.com/o4villegas/gameday-bingo/internal/domain/validate"
)

// PlayersHandler handles player submission and listing.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// submitRequest mirrors the JSON schema for POST /api/players.
type submitRequest struct {
	Name       string   `json:"name"`
	Picks      []string `json:"picks"`
	Tiebreaker string   `json:"tiebreaker"`
}

type submitResponse struct {
	Success bool        `json:"success"`
	Player  game.Player `json:"player"`
}

// HandleList handles GET /api/players requests. The response is always a
// JSON array, even when empty.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	players, err := h.deps.ListPlayers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	if players == nil {
		players = []game.Player{}
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleSubmit handles POST /api/players requests.
func (h *PlayersHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, ErrUnsupportedMedia)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest)
		return
	}

	player, err := h.deps.SubmitPlayer(r.Context(), validate.Request{
		Name:       req.Name,
		Picks:      req.Picks,
		Tiebreaker: req.Tiebreaker,
	})
	if err != nil {
		writeError(w, statusForValidation(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{Success: true, Player: player})
}

// HandleDelete handles DELETE /api/players/{name} requests (admin only).
// Deleting an absent player is a no-op: the response is 200 either way, and
// the found flag only feeds service-level logging and metrics.
func (h *PlayersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, err := h.deps.DeletePlayer(r.Context(), name); err != nil {
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleLeaderboard handles GET /api/leaderboard requests.
func (h *PlayersHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.deps.Leaderboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	if ranked == nil {
		ranked = []game.ScoredPlayer{}
	}
	writeJSON(w, http.StatusOK, ranked)
}

// statusForValidation maps a validation failure to its HTTP status.
func statusForValidation(err error) int {
	switch {
	case validate.IsLocked(err):
		return http.StatusForbidden
	case validate.IsConflict(err):
		return http.StatusConflict
	case validate.ReasonOf(err) != validate.ReasonUnknown:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
