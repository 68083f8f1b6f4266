// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/o4villegas/gameday-bingo/internal/adapters/repository"
	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/domain/game"
	"github.com/o4villegas/gameday-bingo/internal/domain/scoring"
	"github.com/o4villegas/gameday-bingo/internal/domain/validate"
	"github.com/o4villegas/gameday-bingo/internal/verify"
	"github.com/o4villegas/gameday-bingo/pkg/logger"
	"github.com/o4villegas/gameday-bingo/pkg/metrics"
)

// Storage keys. Player records use one key per player so that concurrent
// submissions never clobber each other; everything else is a single record.
const (
	playerKeyPrefix = "player:"
	eventsKey       = "events"
	gameStateKey    = "game-state"
	verificationKey = "verification"
)

// Service implements the API dependencies for the bingo game.
type Service struct {
	mu sync.Mutex

	// Core components
	store    repository.Store
	catalog  *catalog.Catalog
	strategy scoring.Strategy
	analyzer verify.Analyzer
	source   verify.Source

	// lastTS guarantees strictly increasing submission timestamps even
	// when two submissions land in the same millisecond.
	lastTS int64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCatalog sets the event catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Service) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

// WithAnalyzer sets the verification analyzer. Nil leaves AI verification
// disabled; manual game text can still be verified when an analyzer exists.
func WithAnalyzer(a verify.Analyzer) Option {
	return func(s *Service) {
		s.analyzer = a
	}
}

// WithSource sets the upstream game-data feed for verification.
func WithSource(src verify.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Service using provided options.
func New(opts ...Option) *Service {
	s := &Service{
		catalog: catalog.New(catalog.SchemePeriods),
		logger:  nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.strategy = scoring.NewStrategy(s.catalog)
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewMemStore(ctx)
		s.logger.Info(ctx, "using in-memory store")
	}

	// Seed the game state record on first boot so reads never miss.
	state, err := s.loadState(ctx)
	if err != nil {
		return err
	}
	if state.GameID == "" {
		state.GameID = uuid.NewString()
		if err := s.saveState(ctx, state); err != nil {
			return err
		}
	}

	s.started = true
	s.logger.Info(ctx, "bingo service started",
		logger.String("scheme", string(s.catalog.Scheme())),
		logger.String("strategy", s.strategy.Name()),
		logger.Int("catalogSize", s.catalog.Size()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping bingo service...")

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "bingo service stopped")
}

// Catalog exposes the active event catalog.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// SubmitPlayer validates a submission and persists it. The returned player
// carries the server-assigned timestamp. Validation failures come back as
// *validate.Error so the transport layer can map them to status codes.
func (s *Service) SubmitPlayer(ctx context.Context, req validate.Request) (game.Player, error) {
	state, err := s.loadState(ctx)
	if err != nil {
		return game.Player{}, err
	}

	nameTaken := func(normalized string) bool {
		_, ok, getErr := s.store.Get(ctx, playerKeyPrefix+normalized)
		if getErr != nil {
			s.logger.Error(ctx, "name lookup failed", logger.Error(getErr))
		}
		return ok
	}

	name, tiebreaker, err := validate.Submission(s.catalog, state.Locked, req, nameTaken)
	if err != nil {
		metrics.RecordSubmissionRejected(string(validate.ReasonOf(err)))
		return game.Player{}, err
	}

	player := game.Player{
		Name:       name,
		Picks:      req.Picks,
		Tiebreaker: tiebreaker,
		TS:         s.nextTS(),
	}

	raw, err := json.Marshal(player)
	if err != nil {
		return game.Player{}, fmt.Errorf("encode player: %w", err)
	}

	// The pre-validation lookup is advisory only; the conditional write is
	// what actually decides a same-name race.
	key := playerKeyPrefix + game.NormalizeName(name)
	inserted, err := s.store.PutIfAbsent(ctx, key, raw)
	if err != nil {
		return game.Player{}, fmt.Errorf("persist player: %w", err)
	}
	if !inserted {
		metrics.RecordSubmissionRejected(string(validate.ReasonNameTaken))
		return game.Player{}, validate.NewError(validate.ReasonNameTaken, "Name already taken")
	}

	metrics.RecordSubmissionAccepted()
	s.logger.Info(ctx, "player submitted",
		logger.String("name", name),
		logger.Int("picks", len(req.Picks)),
	)
	return player, nil
}

// nextTS returns a strictly increasing unix-millisecond timestamp.
func (s *Service) nextTS() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := time.Now().UnixMilli()
	if ts <= s.lastTS {
		ts = s.lastTS + 1
	}
	s.lastTS = ts
	return ts
}

// ListPlayers returns all players in submission order (oldest first).
func (s *Service) ListPlayers(ctx context.Context) ([]game.Player, error) {
	kvs, err := s.store.List(ctx, playerKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	players := make([]game.Player, 0, len(kvs))
	for _, kv := range kvs {
		var p game.Player
		if err := json.Unmarshal(kv.Value, &p); err != nil {
			s.logger.Error(ctx, "skipping corrupt player record",
				logger.String("key", kv.Key), logger.Error(err))
			continue
		}
		players = append(players, p)
	}

	// List is key-ordered; present players in submission order instead.
	sortPlayersByTS(players)
	metrics.UpdatePlayersTotal(len(players))
	return players, nil
}

// DeletePlayer removes a player by name (case-insensitive). It reports
// whether a record existed.
func (s *Service) DeletePlayer(ctx context.Context, name string) (bool, error) {
	key := playerKeyPrefix + game.NormalizeName(name)
	_, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("lookup player: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	metrics.RecordPlayerDeletion()
	s.logger.Info(ctx, "player deleted", logger.String("name", name))
	return true, nil
}

// Reset wipes players, outcomes, and verification history, unlocks
// submissions, and issues a fresh game id.
func (s *Service) Reset(ctx context.Context) error {
	kvs, err := s.store.List(ctx, playerKeyPrefix)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	for _, kv := range kvs {
		if err := s.store.Delete(ctx, kv.Key); err != nil {
			return fmt.Errorf("delete player: %w", err)
		}
	}
	if err := s.store.Delete(ctx, eventsKey); err != nil {
		return fmt.Errorf("clear outcomes: %w", err)
	}
	if err := s.store.Delete(ctx, verificationKey); err != nil {
		return fmt.Errorf("clear verification: %w", err)
	}

	state := game.State{GameID: uuid.NewString(), Locked: false}
	if err := s.saveState(ctx, state); err != nil {
		return err
	}

	metrics.RecordGameReset()
	s.logger.Info(ctx, "game reset", logger.String("gameId", state.GameID))
	return nil
}

// Outcomes returns the current outcome map. Missing record means no event
// has occurred yet.
func (s *Service) Outcomes(ctx context.Context) (game.Outcomes, error) {
	raw, ok, err := s.store.Get(ctx, eventsKey)
	if err != nil {
		return nil, fmt.Errorf("load outcomes: %w", err)
	}
	outcomes := game.Outcomes{}
	if ok {
		if err := json.Unmarshal(raw, &outcomes); err != nil {
			return nil, fmt.Errorf("decode outcomes: %w", err)
		}
	}
	return outcomes, nil
}

// ToggleOutcome flips one event's occurred flag and returns the full updated
// map. Unknown event ids are rejected with ErrUnknownEvent.
func (s *Service) ToggleOutcome(ctx context.Context, id string) (game.Outcomes, error) {
	if !s.catalog.Contains(id) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, id)
	}

	outcomes, err := s.Outcomes(ctx)
	if err != nil {
		return nil, err
	}
	outcomes[id] = !outcomes[id]

	if err := s.saveOutcomes(ctx, outcomes); err != nil {
		return nil, err
	}

	metrics.RecordOutcomeToggle()
	s.logger.Info(ctx, "outcome toggled",
		logger.String("event", id), logger.Bool("occurred", outcomes[id]))
	return outcomes, nil
}

// GameState returns the lock/identity record.
func (s *Service) GameState(ctx context.Context) (game.State, error) {
	return s.loadState(ctx)
}

// ToggleLock flips the submission lock and returns the new state.
func (s *Service) ToggleLock(ctx context.Context) (game.State, error) {
	state, err := s.loadState(ctx)
	if err != nil {
		return game.State{}, err
	}
	state.Locked = !state.Locked
	if err := s.saveState(ctx, state); err != nil {
		return game.State{}, err
	}

	metrics.RecordLockToggle()
	s.logger.Info(ctx, "lock toggled", logger.Bool("locked", state.Locked))
	return state, nil
}

// Leaderboard scores every player against the current outcomes and returns
// the ranked list.
func (s *Service) Leaderboard(ctx context.Context) ([]game.ScoredPlayer, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	outcomes, err := s.Outcomes(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ranked := scoring.Rank(s.catalog, s.strategy, players, outcomes)
	metrics.RecordScoringDuration(float64(time.Since(start).Milliseconds()))
	return ranked, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()

	stats := map[string]interface{}{
		"started":  s.isStarted(),
		"scheme":   string(s.catalog.Scheme()),
		"strategy": s.strategy.Name(),
	}

	players, err := s.ListPlayers(ctx)
	if err == nil {
		stats["totalPlayers"] = len(players)
	}
	state, err := s.loadState(ctx)
	if err == nil {
		stats["locked"] = state.Locked
		stats["gameId"] = state.GameID
		stats["periodsVerified"] = state.PeriodsVerified
	}
	outcomes, err := s.Outcomes(ctx)
	if err == nil {
		hits := 0
		for _, v := range outcomes {
			if v {
				hits++
			}
		}
		stats["eventsOccurred"] = hits
	}

	return stats
}

func (s *Service) isStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *Service) loadState(ctx context.Context) (game.State, error) {
	raw, ok, err := s.store.Get(ctx, gameStateKey)
	if err != nil {
		return game.State{}, fmt.Errorf("load game state: %w", err)
	}
	if !ok {
		return game.State{}, nil
	}
	var state game.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return game.State{}, fmt.Errorf("decode game state: %w", err)
	}
	return state, nil
}

func (s *Service) saveState(ctx context.Context, state game.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}
	if err := s.store.Put(ctx, gameStateKey, raw); err != nil {
		return fmt.Errorf("persist game state: %w", err)
	}
	return nil
}

func (s *Service) saveOutcomes(ctx context.Context, outcomes game.Outcomes) error {
	raw, err := json.Marshal(outcomes)
	if err != nil {
		return fmt.Errorf("encode outcomes: %w", err)
	}
	if err := s.store.Put(ctx, eventsKey, raw); err != nil {
		return fmt.Errorf("persist outcomes: %w", err)
	}
	return nil
}

func sortPlayersByTS(players []game.Player) {
	sort.Slice(players, func(i, j int) bool { return players[i].TS < players[j].TS })
}
