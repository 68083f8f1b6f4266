// Package gamecheck is an end-to-end smoke tool for a running bingo server.
// It resets the game, submits a batch of players, probes the validation
// contract, toggles outcomes, and cross-checks the server's leaderboard
// against a local recomputation.
package gamecheck

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/o4villegas/gameday-bingo/internal/client"
	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
)

// Run executes the full smoke sequence against a live server.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	scheme := catalog.Scheme(config.Scheme)
	if scheme != catalog.SchemePeriods && scheme != catalog.SchemeTiers {
		return fmt.Errorf("unknown scheme %q", config.Scheme)
	}
	cat := catalog.New(scheme)

	c := client.New(config.BaseURL,
		client.WithAdminCode(config.AdminCode),
		client.WithTimeout(config.Timeout),
	)

	log.Printf("🔍 Checking service health at %s...", config.BaseURL)
	if !c.Healthy(ctx) {
		return fmt.Errorf("service at %s is not healthy", config.BaseURL)
	}

	log.Printf("🧹 Resetting game state...")
	if err := c.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("📤 Submitting %d players...", config.Players)
	names := generateNames(config.Players)
	for _, name := range names {
		_, err := c.Submit(ctx, client.SubmitRequest{
			Name:       name,
			Picks:      generatePicks(cat, rng),
			Tiebreaker: fmt.Sprintf("%d", rng.Intn(100)),
		})
		if err != nil {
			stats.SubmissionsRefused++
			log.Printf("  ⚠️  submission %s refused: %v", name, err)
			continue
		}
		stats.PlayersSubmitted++
		if config.Verbose {
			log.Printf("  ✅ submitted %s", name)
		}
	}

	log.Printf("📋 Probing the validation contract...")
	if err := checkContract(ctx, c, cat, rng, stats); err != nil {
		return fmt.Errorf("contract checks: %w", err)
	}

	log.Printf("🎲 Toggling random outcomes...")
	toggled, err := toggleRandomOutcomes(ctx, c, cat, rng)
	if err != nil {
		return fmt.Errorf("toggle outcomes: %w", err)
	}
	stats.OutcomesToggled = len(toggled)

	log.Printf("🔄 Checking submission reconciliation...")
	if err := checkReconciliation(ctx, c, cat, rng, stats); err != nil {
		return fmt.Errorf("reconciliation check: %w", err)
	}

	log.Printf("🏆 Cross-checking the leaderboard...")
	if err := checkLeaderboard(ctx, c, cat, stats); err != nil {
		return fmt.Errorf("leaderboard check: %w", err)
	}

	serverStats, err := c.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	log.Printf("📊 Server stats: %v", serverStats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if stats.ContractFailures > 0 {
		return fmt.Errorf("%d contract check(s) failed", stats.ContractFailures)
	}
	return nil
}

// toggleRandomOutcomes flips roughly a quarter of the catalog on.
func toggleRandomOutcomes(ctx context.Context, c *client.Client, cat *catalog.Catalog, rng *rand.Rand) ([]string, error) {
	ids := make([]string, 0, cat.Size())
	for _, ev := range cat.Events() {
		ids = append(ids, ev.ID)
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	count := len(ids) / 4
	if count == 0 {
		count = 1
	}
	toggled := ids[:count]
	for _, id := range toggled {
		if _, err := c.ToggleOutcome(ctx, id); err != nil {
			return nil, err
		}
	}
	return toggled, nil
}

func displayFinalStats(stats *Stats) {
	log.Printf("")
	log.Printf("======== Smoke run complete ========")
	log.Printf("Players submitted:    %d", stats.PlayersSubmitted)
	log.Printf("Submissions refused:  %d", stats.SubmissionsRefused)
	log.Printf("Contract checks:      %d (%d failed)", stats.ContractChecks, stats.ContractFailures)
	log.Printf("Outcomes toggled:     %d", stats.OutcomesToggled)
	log.Printf("Leaderboard entries:  %d", stats.LeaderboardSize)
	log.Printf("Duration:             %s", stats.Duration.Round(time.Millisecond))
}
