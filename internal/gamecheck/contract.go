package gamecheck

import (
	"context"
	"log"
	"math/rand"
	"net/http"

	"github.com/o4villegas/gameday-bingo/internal/client"
	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
)

// checkContract sends deliberately invalid submissions and asserts the
// server's status codes.
func checkContract(ctx context.Context, c *client.Client, cat *catalog.Catalog, rng *rand.Rand, stats *Stats) error {
	expect := func(label string, wantStatus int, err error) {
		stats.ContractChecks++
		got := client.StatusOf(err)
		if got != wantStatus {
			stats.ContractFailures++
			log.Printf("  ❌ %s: want %d, got %d (%v)", label, wantStatus, got, err)
			return
		}
		log.Printf("  ✅ %s -> %d", label, got)
	}

	valid := generatePicks(cat, rng)

	// Too few picks.
	_, err := c.Submit(ctx, client.SubmitRequest{Name: "contract-count", Picks: valid[:1]})
	expect("wrong pick count", http.StatusBadRequest, err)

	// Duplicate picks.
	dup := append([]string(nil), valid...)
	dup[1] = dup[0]
	_, err = c.Submit(ctx, client.SubmitRequest{Name: "contract-dup", Picks: dup})
	expect("duplicate picks", http.StatusBadRequest, err)

	// Unknown pick id.
	unknown := append([]string(nil), valid...)
	unknown[0] = "zz_not_a_real_event"
	_, err = c.Submit(ctx, client.SubmitRequest{Name: "contract-unknown", Picks: unknown})
	expect("unknown pick id", http.StatusBadRequest, err)

	// Blank name.
	_, err = c.Submit(ctx, client.SubmitRequest{Name: "   ", Picks: valid})
	expect("blank name", http.StatusBadRequest, err)

	// Name collision, case-insensitive.
	_, err = c.Submit(ctx, client.SubmitRequest{Name: "Contract-Taken", Picks: generatePicks(cat, rng)})
	if err != nil {
		return err
	}
	_, err = c.Submit(ctx, client.SubmitRequest{Name: "CONTRACT-TAKEN", Picks: generatePicks(cat, rng)})
	expect("name collision", http.StatusConflict, err)

	// Locked submissions.
	locked, err := c.ToggleLock(ctx)
	if err != nil {
		return err
	}
	if !locked {
		// The lock was already on before the run; flip it twice to land locked.
		if _, err = c.ToggleLock(ctx); err != nil {
			return err
		}
		if _, err = c.ToggleLock(ctx); err != nil {
			return err
		}
	}
	_, err = c.Submit(ctx, client.SubmitRequest{Name: "contract-locked", Picks: generatePicks(cat, rng)})
	expect("locked submissions", http.StatusForbidden, err)

	// Unlock again for the rest of the run.
	if _, err = c.ToggleLock(ctx); err != nil {
		return err
	}
	return nil
}
