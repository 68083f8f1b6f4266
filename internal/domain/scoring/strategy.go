package scoring

import (
	"fmt"

	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/domain/game"
)

// Tier reward values for the tiers deployment.
const (
	tier4Discount  = 50
	tier3Discount  = 20
	tabDiscountCap = 50
)

// Strategy computes the deployment-variant bonus for one scored player:
// bonus counters plus their prize strings. Placement prizes are handled by
// Rank and are common to both variants.
type Strategy interface {
	// Apply fills the variant's bonus fields on sp. CorrectCount is already
	// populated when Apply runs.
	Apply(sp *game.ScoredPlayer, cat *catalog.Catalog, outcomes game.Outcomes)

	// Name identifies the strategy in logs and stats.
	Name() string
}

// NewStrategy returns the bonus strategy matching the catalog's scheme.
func NewStrategy(cat *catalog.Catalog) Strategy {
	if cat.Scheme() == catalog.SchemeTiers {
		return TierRewards{}
	}
	return QuarterShells{}
}

// QuarterShells is the periods-variant bonus: one shell per bonus-eligible
// period (the four quarters; FG never qualifies) in which any pick hit.
type QuarterShells struct{}

// Name implements Strategy.
func (QuarterShells) Name() string { return "quarter_shells" }

// Apply implements Strategy.
func (QuarterShells) Apply(sp *game.ScoredPlayer, cat *catalog.Catalog, outcomes game.Outcomes) {
	hit := make(map[catalog.Period]bool)
	for _, id := range sp.Picks {
		if !outcomes.Hit(id) {
			continue
		}
		ev, ok := cat.Lookup(id)
		if !ok {
			// Orphaned pick: counts toward CorrectCount, no bonus.
			continue
		}
		hit[ev.Period] = true
	}

	for _, p := range cat.BonusPeriods() {
		if hit[p] {
			sp.QuarterShells++
		}
	}

	if sp.QuarterShells > 0 {
		sp.Prizes = append(sp.Prizes, fmt.Sprintf("%d× $3 YCI %s",
			sp.QuarterShells, plural(sp.QuarterShells, "shell", "shells")))
	}
}

// TierRewards is the tiers-variant bonus: tab discounts for the two rarest
// tiers (summed, capped) and shell credits for the lower two.
type TierRewards struct{}

// Name implements Strategy.
func (TierRewards) Name() string { return "tier_rewards" }

// Apply implements Strategy.
func (TierRewards) Apply(sp *game.ScoredPlayer, cat *catalog.Catalog, outcomes game.Outcomes) {
	discount := 0
	for _, id := range sp.Picks {
		if !outcomes.Hit(id) {
			continue
		}
		ev, ok := cat.Lookup(id)
		if !ok {
			continue
		}
		switch ev.Tier {
		case catalog.Tier4:
			discount += tier4Discount
		case catalog.Tier3:
			discount += tier3Discount
		case catalog.Tier2:
			sp.FreeShells++
		case catalog.Tier1:
			sp.Shells3++
		case catalog.TierNone:
			// Event without a tier classification: no bonus.
		}
	}

	if discount > tabDiscountCap {
		discount = tabDiscountCap
	}
	sp.TabDiscount = discount

	if discount > 0 {
		sp.Prizes = append(sp.Prizes, fmt.Sprintf("%d%% off tab", discount))
	}
	if sp.FreeShells > 0 {
		sp.Prizes = append(sp.Prizes, fmt.Sprintf("%d free YCI %s",
			sp.FreeShells, plural(sp.FreeShells, "shell", "shells")))
	}
	if sp.Shells3 > 0 {
		sp.Prizes = append(sp.Prizes, fmt.Sprintf("%d× $3 YCI %s",
			sp.Shells3, plural(sp.Shells3, "shell", "shells")))
	}
}
