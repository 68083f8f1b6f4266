// Package scoring computes per-player results and the global ranking.
//
// Everything here is a pure function of (players, outcome map): results are
// recomputed from scratch on every read and never persisted, so calling any
// function twice on unchanged inputs yields identical output.
package scoring

import (
	"fmt"
	"sort"

	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/domain/game"
)

// Placement prize table: top-3 by correct picks, earlier submission wins
// ties. Only players with at least one correct pick are eligible.
var placementDiscounts = []int{20, 15, 10}

// Score computes a single player's derived results.
//
// Picks referencing ids absent from the catalog (orphaned after a catalog
// change) still count toward CorrectCount when their outcome is true, but
// contribute to no group bonus: without a catalog entry they have no
// resolvable period or tier.
func Score(cat *catalog.Catalog, strat Strategy, p game.Player, outcomes game.Outcomes) game.ScoredPlayer {
	sp := game.ScoredPlayer{Player: p, Prizes: []string{}}

	for _, id := range p.Picks {
		if outcomes.Hit(id) {
			sp.CorrectCount++
		}
	}

	strat.Apply(&sp, cat, outcomes)
	return sp
}

// Rank scores every player and assigns placement prizes.
//
// Ordering is correct picks descending, then submission time ascending, then
// name. The final key only matters for byte-for-byte determinism when two
// players share both count and timestamp. The top-3 eligible players get a
// 1-based rank and a placement discount; a zero-score player never gets a
// rank no matter where the sort puts them.
func Rank(cat *catalog.Catalog, strat Strategy, players []game.Player, outcomes game.Outcomes) []game.ScoredPlayer {
	scored := make([]game.ScoredPlayer, 0, len(players))
	for _, p := range players {
		scored = append(scored, Score(cat, strat, p, outcomes))
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].CorrectCount != scored[j].CorrectCount {
			return scored[i].CorrectCount > scored[j].CorrectCount
		}
		if scored[i].TS != scored[j].TS {
			return scored[i].TS < scored[j].TS
		}
		return scored[i].Name < scored[j].Name
	})

	awarded := 0
	for i := range scored {
		if awarded >= len(placementDiscounts) {
			break
		}
		if scored[i].CorrectCount == 0 {
			// Eligibility requires at least one hit; the sort puts all
			// zero-score players after every scorer, so stop here.
			break
		}
		rank := awarded + 1
		discount := placementDiscounts[awarded]
		scored[i].Rank = &rank
		scored[i].TabDiscount += discount
		scored[i].Prizes = append(scored[i].Prizes, fmt.Sprintf("%d%% off tab", discount))
		awarded++
	}

	return scored
}

// plural returns the singular form for exactly one unit and the plural form
// otherwise.
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
