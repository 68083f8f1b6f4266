package gamecheck

import (
	"fmt"
	"math/rand"

	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
)

// generateNames produces n distinct player names.
func generateNames(n int) []string {
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, fmt.Sprintf("smoke-player-%03d", i+1))
	}
	return names
}

// generatePicks builds a valid random ballot for the catalog: for the
// periods scheme that means exactly the per-period quota from each period;
// for tiers any distinct set of the required size.
func generatePicks(cat *catalog.Catalog, rng *rand.Rand) []string {
	if cat.Scheme() == catalog.SchemeTiers {
		ids := make([]string, 0, cat.Size())
		for _, ev := range cat.Events() {
			ids = append(ids, ev.ID)
		}
		rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		return ids[:cat.RequiredPicks()]
	}

	byPeriod := map[catalog.Period][]string{}
	for _, ev := range cat.Events() {
		byPeriod[ev.Period] = append(byPeriod[ev.Period], ev.ID)
	}

	picks := make([]string, 0, cat.RequiredPicks())
	for _, period := range catalog.PeriodsOrder {
		ids := append([]string(nil), byPeriod[period]...)
		rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		picks = append(picks, ids[:cat.PerPeriodQuota()]...)
	}
	return picks
}
