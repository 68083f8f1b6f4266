package gamecheck

import (
	"context"
	"fmt"
	"log"

	"github.com/o4villegas/gameday-bingo/internal/client"
	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/domain/scoring"
)

// checkLeaderboard fetches players, outcomes, and the server-ranked
// leaderboard, recomputes the ranking locally, and compares.
func checkLeaderboard(ctx context.Context, c *client.Client, cat *catalog.Catalog, stats *Stats) error {
	players, err := c.Players(ctx)
	if err != nil {
		return fmt.Errorf("players: %w", err)
	}
	outcomes, err := c.Outcomes(ctx)
	if err != nil {
		return fmt.Errorf("outcomes: %w", err)
	}
	serverRanked, err := c.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}
	stats.LeaderboardSize = len(serverRanked)

	localRanked := scoring.Rank(cat, scoring.NewStrategy(cat), players, outcomes)

	if len(localRanked) != len(serverRanked) {
		return fmt.Errorf("length mismatch: server %d, local %d", len(serverRanked), len(localRanked))
	}
	for i := range localRanked {
		s, l := serverRanked[i], localRanked[i]
		if s.Name != l.Name || s.CorrectCount != l.CorrectCount || s.TabDiscount != l.TabDiscount {
			return fmt.Errorf("row %d mismatch: server %s/%d/%d%%, local %s/%d/%d%%",
				i, s.Name, s.CorrectCount, s.TabDiscount, l.Name, l.CorrectCount, l.TabDiscount)
		}
	}

	top := len(serverRanked)
	if top > 3 {
		top = 3
	}
	for i := 0; i < top; i++ {
		row := serverRanked[i]
		log.Printf("  #%d %-20s correct=%d discount=%d%% prizes=%v",
			i+1, row.Name, row.CorrectCount, row.TabDiscount, row.Prizes)
	}
	log.Printf("  server and local rankings agree (%d rows)", len(serverRanked))
	return nil
}
