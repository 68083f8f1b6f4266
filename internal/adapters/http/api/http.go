// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/domain/game"
	"github.com/o4villegas/gameday-bingo/internal/domain/validate"
	"github.com/o4villegas/gameday-bingo/internal/verify"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Catalog() *catalog.Catalog

	SubmitPlayer(ctx context.Context, req validate.Request) (game.Player, error)
	ListPlayers(ctx context.Context) ([]game.Player, error)
	DeletePlayer(ctx context.Context, name string) (bool, error)

	Outcomes(ctx context.Context) (game.Outcomes, error)
	ToggleOutcome(ctx context.Context, id string) (game.Outcomes, error)

	GameState(ctx context.Context) (game.State, error)
	ToggleLock(ctx context.Context) (game.State, error)
	Reset(ctx context.Context) error

	Leaderboard(ctx context.Context) ([]game.ScoredPlayer, error)

	RunVerification(ctx context.Context, period, manualText string) (verify.Result, error)
	VerificationStatus(ctx context.Context) (verify.State, error)
	ApproveVerification(ctx context.Context) (game.Outcomes, error)
	DismissVerification(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	playersHandler *PlayersHandler
	eventsHandler  *EventsHandler
	adminHandler   *AdminHandler
	verifyHandler  *VerifyHandler
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler

	adminCode    string
	maxBodyBytes int64
}

// ServerOption customizes the API server.
type ServerOption func(*Server)

// WithAdminCode sets the shared secret for administrative routes.
func WithAdminCode(code string) ServerOption {
	return func(s *Server) { s.adminCode = code }
}

// WithMaxBodyBytes caps accepted request body sizes.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		playersHandler: NewPlayersHandler(deps),
		eventsHandler:  NewEventsHandler(deps),
		adminHandler:   NewAdminHandler(deps),
		verifyHandler:  NewVerifyHandler(deps),
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		maxBodyBytes:   1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return AdminAuth(s.adminCode, next)
	}

	mux.HandleFunc("GET /api/players", MetricsMiddleware(s.playersHandler.HandleList, "players"))
	mux.HandleFunc("POST /api/players", MetricsMiddleware(s.withBodyLimit(s.playersHandler.HandleSubmit), "players"))
	mux.HandleFunc("DELETE /api/players/{name}", MetricsMiddleware(admin(s.playersHandler.HandleDelete), "players"))

	mux.HandleFunc("GET /api/events", MetricsMiddleware(s.eventsHandler.HandleGetOutcomes, "events"))
	mux.HandleFunc("PUT /api/events/{id}", MetricsMiddleware(admin(s.eventsHandler.HandleToggle), "events"))

	mux.HandleFunc("GET /api/game-state", MetricsMiddleware(s.adminHandler.HandleGameState, "game_state"))
	mux.HandleFunc("POST /api/lock", MetricsMiddleware(admin(s.adminHandler.HandleToggleLock), "lock"))
	mux.HandleFunc("POST /api/reset", MetricsMiddleware(admin(s.adminHandler.HandleReset), "reset"))

	mux.HandleFunc("GET /api/leaderboard", MetricsMiddleware(s.playersHandler.HandleLeaderboard, "leaderboard"))

	mux.HandleFunc("POST /api/verify", MetricsMiddleware(admin(s.withBodyLimit(s.verifyHandler.HandleRun)), "verify"))
	mux.HandleFunc("GET /api/verify/status", MetricsMiddleware(admin(s.verifyHandler.HandleStatus), "verify"))
	mux.HandleFunc("POST /api/verify/approve", MetricsMiddleware(admin(s.verifyHandler.HandleApprove), "verify"))
	mux.HandleFunc("POST /api/verify/dismiss", MetricsMiddleware(admin(s.verifyHandler.HandleDismiss), "verify"))

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

func (s *Server) withBodyLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
		next.ServeHTTP(w, r)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
