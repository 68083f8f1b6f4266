package gamecheck

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/o4villegas/gameday-bingo/internal/client"
	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/poller"
)

// checkReconciliation runs a live poller against the server and verifies the
// local submitted-player marker self-heals after an admin deletion: submit a
// tracked player, mark it locally, delete it server-side, and wait for the
// refresh loop to notice and clear the marker.
func checkReconciliation(ctx context.Context, c *client.Client, cat *catalog.Catalog, rng *rand.Rand, stats *Stats) error {
	const tracked = "reconcile-tracked"

	if _, err := c.Submit(ctx, client.SubmitRequest{
		Name:  tracked,
		Picks: generatePicks(cat, rng),
	}); err != nil {
		return err
	}

	rec := poller.NewReconciler(poller.NewSafe(poller.NewMemState()))
	rec.MarkSubmitted(tracked)

	fetch := func(ctx context.Context) (poller.Snapshot, error) {
		players, err := c.Players(ctx)
		if err != nil {
			return poller.Snapshot{}, err
		}
		outcomes, err := c.Outcomes(ctx)
		if err != nil {
			return poller.Snapshot{}, err
		}
		state, err := c.GameState(ctx)
		if err != nil {
			return poller.Snapshot{}, err
		}
		return poller.Snapshot{Players: players, Outcomes: outcomes, State: state}, nil
	}

	snapshots := make(chan poller.Snapshot, 16)
	p := poller.New(fetch,
		poller.WithBaseInterval(100*time.Millisecond),
		poller.WithOnUpdate(func(s poller.Snapshot) {
			rec.Reconcile(s.Players)
			select {
			case snapshots <- s:
			default:
			}
		}),
	)
	p.Start(ctx)
	defer p.Stop()

	// First snapshot must include the tracked player and keep the marker.
	if err := waitUntil(ctx, snapshots, func() bool {
		_, ok := rec.Submitted()
		return ok
	}); err != nil {
		return err
	}
	stats.ContractChecks++
	if name, ok := rec.Submitted(); !ok || name != tracked {
		stats.ContractFailures++
		log.Printf("  ❌ marker survives while player exists: got %q, %v", name, ok)
	} else {
		log.Printf("  ✅ marker survives while player exists")
	}

	if err := c.DeletePlayer(ctx, tracked); err != nil {
		return err
	}

	// The next snapshots no longer carry the player; the marker must clear.
	stats.ContractChecks++
	if err := waitUntil(ctx, snapshots, func() bool {
		_, ok := rec.Submitted()
		return !ok
	}); err != nil {
		stats.ContractFailures++
		log.Printf("  ❌ marker not cleared after deletion: %v", err)
		return nil
	}
	log.Printf("  ✅ marker cleared after server-side deletion")
	return nil
}

// waitUntil drains snapshots until cond holds or the deadline passes.
func waitUntil(ctx context.Context, snapshots <-chan poller.Snapshot, cond func() bool) error {
	deadline := time.NewTimer(5 * time.Second)
	defer deadline.Stop()
	for {
		if cond() {
			return nil
		}
		select {
		case <-snapshots:
		case <-deadline.C:
			return context.DeadlineExceeded
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
