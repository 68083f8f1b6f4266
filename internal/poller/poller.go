// Package poller implements the client-side refresh loop: periodic fetches
// of game data with exponential backoff on failure, visibility-aware
// scheduling, and staleness tracking on an independent timer.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/o4villegas/gameday-bingo/internal/domain/game"
	"github.com/o4villegas/gameday-bingo/pkg/logger"
)

// Defaults match the production refresh cadence.
const (
	defaultBaseInterval   = 8 * time.Second
	defaultMaxBackoff     = 60 * time.Second
	defaultStaleThreshold = 30 * time.Second
)

// Snapshot is one consistent fetch of everything a client renders.
type Snapshot struct {
	Players  []game.Player
	Outcomes game.Outcomes
	State    game.State
}

// FetchFunc retrieves a fresh snapshot from the server.
type FetchFunc func(ctx context.Context) (Snapshot, error)

// Poller drives the refresh loop. All exported methods are safe for
// concurrent use.
type Poller struct {
	mu sync.Mutex

	fetch          FetchFunc
	baseInterval   time.Duration
	maxBackoff     time.Duration
	staleThreshold time.Duration
	onUpdate       func(Snapshot)
	onStale        func(bool)
	logger         logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	timer             *time.Timer
	running           bool
	visible           bool
	enabled           bool
	inFlight          bool
	consecutiveErrors int
	lastSuccess       time.Time
	stale             bool

	wg sync.WaitGroup
}

// Option customizes the poller.
type Option func(*Poller)

// WithBaseInterval sets the healthy poll interval.
func WithBaseInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.baseInterval = d
		}
	}
}

// WithMaxBackoff caps the error backoff delay.
func WithMaxBackoff(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.maxBackoff = d
		}
	}
}

// WithStaleThreshold sets how long without a successful fetch counts as
// stale.
func WithStaleThreshold(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.staleThreshold = d
		}
	}
}

// WithOnUpdate registers the callback invoked with each successful snapshot.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(p *Poller) { p.onUpdate = fn }
}

// WithOnStale registers the callback invoked on staleness transitions.
func WithOnStale(fn func(bool)) Option {
	return func(p *Poller) { p.onStale = fn }
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a poller around fetch. The poller starts visible and enabled.
func New(fetch FetchFunc, opts ...Option) *Poller {
	p := &Poller{
		fetch:          fetch,
		baseInterval:   defaultBaseInterval,
		maxBackoff:     defaultMaxBackoff,
		staleThreshold: defaultStaleThreshold,
		visible:        true,
		enabled:        true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get()
	}
	return p
}

// Start begins polling. The first poll fires immediately; the staleness
// watcher runs on its own timer, independent of poll scheduling.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.running = true
	p.lastSuccess = time.Now()
	p.mu.Unlock()

	p.wg.Add(1)
	go p.watchStaleness()

	go p.pollNow()
}

// Stop cancels the pending timer, the staleness watcher, and any in-flight
// fetch, then waits for the watcher to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.stopTimerLocked()
	cancel := p.cancel
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
}

// SetVisible informs the poller of UI visibility. Going hidden stops
// scheduling (an in-flight fetch still lands); regaining visibility cancels
// any pending timer and polls immediately.
func (p *Poller) SetVisible(visible bool) {
	p.mu.Lock()
	if p.visible == visible {
		p.mu.Unlock()
		return
	}
	p.visible = visible
	p.stopTimerLocked()
	shouldPoll := visible && p.running && p.enabled
	p.mu.Unlock()

	if shouldPoll {
		go p.pollNow()
	}
}

// SetEnabled turns polling on or off entirely. Re-enabling polls
// immediately.
func (p *Poller) SetEnabled(enabled bool) {
	p.mu.Lock()
	if p.enabled == enabled {
		p.mu.Unlock()
		return
	}
	p.enabled = enabled
	p.stopTimerLocked()
	shouldPoll := enabled && p.running && p.visible
	p.mu.Unlock()

	if shouldPoll {
		go p.pollNow()
	}
}

// Stale reports whether the last successful fetch is older than the
// staleness threshold.
func (p *Poller) Stale() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stale
}

// ConsecutiveErrors returns the current error streak length.
func (p *Poller) ConsecutiveErrors() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consecutiveErrors
}

// NextDelay returns the delay the next scheduled poll would use, given the
// current error streak.
func (p *Poller) NextDelay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.delayLocked()
}

// delayLocked computes base * 2^errors, capped at maxBackoff.
func (p *Poller) delayLocked() time.Duration {
	d := p.baseInterval
	for i := 0; i < p.consecutiveErrors; i++ {
		d *= 2
		if d >= p.maxBackoff {
			return p.maxBackoff
		}
	}
	return d
}

func (p *Poller) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// pollNow performs one fetch and reschedules when appropriate.
func (p *Poller) pollNow() {
	p.mu.Lock()
	if !p.running || !p.enabled || p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	ctx := p.ctx
	p.mu.Unlock()

	snap, err := p.fetch(ctx)

	p.mu.Lock()
	p.inFlight = false
	if err != nil {
		p.consecutiveErrors++
		p.logger.Warn(ctx, "poll failed",
			logger.Int("consecutiveErrors", p.consecutiveErrors),
			logger.Error(err),
		)
	} else {
		p.consecutiveErrors = 0
		p.lastSuccess = time.Now()
		p.setStaleLocked(false)
	}

	// Hidden or disabled pollers apply the in-flight result but do not
	// reschedule.
	if p.running && p.enabled && p.visible {
		delay := p.delayLocked()
		p.timer = time.AfterFunc(delay, p.pollNow)
	}
	onUpdate := p.onUpdate
	p.mu.Unlock()

	if err == nil && onUpdate != nil {
		onUpdate(snap)
	}
}

// watchStaleness flips the stale flag on its own cadence so a stuck poll
// loop cannot mask data age.
func (p *Poller) watchStaleness() {
	defer p.wg.Done()

	tick := p.staleThreshold / 10
	if tick < time.Millisecond {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			isStale := time.Since(p.lastSuccess) > p.staleThreshold
			p.setStaleLocked(isStale)
			p.mu.Unlock()
		}
	}
}

// setStaleLocked updates the flag and fires the transition callback.
func (p *Poller) setStaleLocked(stale bool) {
	if p.stale == stale {
		return
	}
	p.stale = stale
	if p.onStale != nil {
		go p.onStale(stale)
	}
}
