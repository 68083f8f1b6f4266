package poller_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/o4villegas/gameday-bingo/internal/domain/game"
	"github.com/o4villegas/gameday-bingo/internal/poller"
	"github.com/o4villegas/gameday-bingo/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestPollerBackoff(t *testing.T) {
	Convey("Given a poller with a failing fetch", t, func() {
		var calls atomic.Int64
		fetch := func(ctx context.Context) (poller.Snapshot, error) {
			calls.Add(1)
			return poller.Snapshot{}, errors.New("boom")
		}

		p := poller.New(fetch,
			poller.WithBaseInterval(10*time.Millisecond),
			poller.WithMaxBackoff(40*time.Millisecond),
		)
		p.Start(context.Background())
		defer p.Stop()

		Convey("The error streak grows and the delay doubles up to the cap", func() {
			So(waitFor(func() bool { return p.ConsecutiveErrors() >= 1 }), ShouldBeTrue)
			So(p.NextDelay(), ShouldEqual, 20*time.Millisecond)

			So(waitFor(func() bool { return p.ConsecutiveErrors() >= 3 }), ShouldBeTrue)
			So(p.NextDelay(), ShouldEqual, 40*time.Millisecond)

			So(waitFor(func() bool { return p.ConsecutiveErrors() >= 5 }), ShouldBeTrue)
			So(p.NextDelay(), ShouldEqual, 40*time.Millisecond)
		})
	})
}

func TestPollerRecovery(t *testing.T) {
	Convey("Given a fetch that fails twice then succeeds", t, func() {
		var calls atomic.Int64
		fetch := func(ctx context.Context) (poller.Snapshot, error) {
			n := calls.Add(1)
			if n <= 2 {
				return poller.Snapshot{}, errors.New("boom")
			}
			return poller.Snapshot{State: game.State{Locked: true}}, nil
		}

		var updates atomic.Int64
		var lastLocked atomic.Bool
		p := poller.New(fetch,
			poller.WithBaseInterval(5*time.Millisecond),
			poller.WithOnUpdate(func(s poller.Snapshot) {
				updates.Add(1)
				lastLocked.Store(s.State.Locked)
			}),
		)
		p.Start(context.Background())
		defer p.Stop()

		Convey("A success resets the streak and delivers the snapshot", func() {
			So(waitFor(func() bool { return updates.Load() >= 1 }), ShouldBeTrue)
			So(p.ConsecutiveErrors(), ShouldEqual, 0)
			So(p.NextDelay(), ShouldEqual, 5*time.Millisecond)
			So(lastLocked.Load(), ShouldBeTrue)
		})
	})
}

func TestPollerVisibility(t *testing.T) {
	Convey("Given a running poller", t, func() {
		var calls atomic.Int64
		fetch := func(ctx context.Context) (poller.Snapshot, error) {
			calls.Add(1)
			return poller.Snapshot{}, nil
		}

		p := poller.New(fetch, poller.WithBaseInterval(5*time.Millisecond))
		p.Start(context.Background())
		defer p.Stop()

		So(waitFor(func() bool { return calls.Load() >= 2 }), ShouldBeTrue)

		Convey("Hiding stops rescheduling", func() {
			p.SetVisible(false)
			time.Sleep(20 * time.Millisecond)
			settled := calls.Load()
			time.Sleep(50 * time.Millisecond)
			So(calls.Load(), ShouldEqual, settled)

			Convey("And regaining visibility polls immediately", func() {
				before := calls.Load()
				p.SetVisible(true)
				So(waitFor(func() bool { return calls.Load() > before }), ShouldBeTrue)
			})
		})

		Convey("Disabling stops rescheduling until re-enabled", func() {
			p.SetEnabled(false)
			time.Sleep(20 * time.Millisecond)
			settled := calls.Load()
			time.Sleep(50 * time.Millisecond)
			So(calls.Load(), ShouldEqual, settled)

			before := calls.Load()
			p.SetEnabled(true)
			So(waitFor(func() bool { return calls.Load() > before }), ShouldBeTrue)
		})
	})
}

func TestPollerStaleness(t *testing.T) {
	Convey("Given a poller whose fetch always fails", t, func() {
		fetch := func(ctx context.Context) (poller.Snapshot, error) {
			return poller.Snapshot{}, errors.New("down")
		}

		var staleFlips atomic.Int64
		p := poller.New(fetch,
			poller.WithBaseInterval(5*time.Millisecond),
			poller.WithMaxBackoff(10*time.Millisecond),
			poller.WithStaleThreshold(30*time.Millisecond),
			poller.WithOnStale(func(stale bool) {
				if stale {
					staleFlips.Add(1)
				}
			}),
		)
		p.Start(context.Background())
		defer p.Stop()

		Convey("Data goes stale once no success lands within the threshold", func() {
			So(p.Stale(), ShouldBeFalse)
			So(waitFor(func() bool { return p.Stale() }), ShouldBeTrue)
			So(waitFor(func() bool { return staleFlips.Load() >= 1 }), ShouldBeTrue)
		})
	})

	Convey("Given a healthy poller", t, func() {
		fetch := func(ctx context.Context) (poller.Snapshot, error) {
			return poller.Snapshot{}, nil
		}
		p := poller.New(fetch,
			poller.WithBaseInterval(5*time.Millisecond),
			poller.WithStaleThreshold(100*time.Millisecond),
		)
		p.Start(context.Background())
		defer p.Stop()

		Convey("Data never goes stale", func() {
			time.Sleep(150 * time.Millisecond)
			So(p.Stale(), ShouldBeFalse)
		})
	})
}

func TestPollerStop(t *testing.T) {
	Convey("Given a running poller", t, func() {
		var calls atomic.Int64
		fetch := func(ctx context.Context) (poller.Snapshot, error) {
			calls.Add(1)
			return poller.Snapshot{}, nil
		}
		p := poller.New(fetch, poller.WithBaseInterval(5*time.Millisecond))
		p.Start(context.Background())

		So(waitFor(func() bool { return calls.Load() >= 1 }), ShouldBeTrue)

		Convey("Stop halts all polling", func() {
			p.Stop()
			settled := calls.Load()
			time.Sleep(50 * time.Millisecond)
			So(calls.Load(), ShouldEqual, settled)
		})
	})
}

// waitFor polls cond for up to two seconds.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return false
}
