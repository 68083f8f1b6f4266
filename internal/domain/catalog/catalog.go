// Package catalog holds the compiled-in registry of predictable game events.
//
// The catalog is static data: a deployment ships with exactly one
// classification scheme (periods or tiers) and the event list never changes
// for the lifetime of a game round.
package catalog

// Scheme selects the active event classification for a deployment.
type Scheme string

// Supported classification schemes.
const (
	// SchemePeriods groups events into game quarters plus a full-game bucket.
	SchemePeriods Scheme = "periods"
	// SchemeTiers groups events into rarity bands.
	SchemeTiers Scheme = "tiers"
)

// Period is a time-ordered game segment.
type Period string

// Period values in game order. FG collects full-game observations that only
// resolve at the final whistle.
const (
	PeriodQ1 Period = "Q1"
	PeriodQ2 Period = "Q2"
	PeriodQ3 Period = "Q3"
	PeriodQ4 Period = "Q4"
	PeriodFG Period = "FG"
)

// PeriodsOrder lists all periods in display order.
var PeriodsOrder = []Period{PeriodQ1, PeriodQ2, PeriodQ3, PeriodQ4, PeriodFG}

// ValidPeriod reports whether s names a known period.
func ValidPeriod(s string) bool {
	for _, p := range PeriodsOrder {
		if string(p) == s {
			return true
		}
	}
	return false
}

// Tier is a rarity band. Higher tiers are less likely events with bigger
// rewards.
type Tier int

// Tier values, rarest first.
const (
	TierNone Tier = 0
	Tier1    Tier = 1
	Tier2    Tier = 2
	Tier3    Tier = 3
	Tier4    Tier = 4
)

// Event is a single predictable game event. Exactly one of Period or Tier is
// meaningful depending on the deployment scheme.
type Event struct {
	ID     string
	Name   string
	Period Period
	Tier   Tier
}

// Pick quotas per scheme. These are part of the game contract: the validator
// rejects any submission that does not match them exactly.
const (
	periodsRequiredPicks = 10
	periodsPerPeriod     = 2
	tiersRequiredPicks   = 5
)

// Catalog is an immutable list of events plus a lookup map.
type Catalog struct {
	scheme Scheme
	events []Event
	byID   map[string]Event
}

// New builds the catalog for the given scheme. Unknown schemes fall back to
// the periods deployment.
func New(scheme Scheme) *Catalog {
	var events []Event
	switch scheme {
	case SchemeTiers:
		events = tierEvents
	default:
		scheme = SchemePeriods
		events = periodEvents
	}

	byID := make(map[string]Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	return &Catalog{scheme: scheme, events: events, byID: byID}
}

// Scheme returns the active classification scheme.
func (c *Catalog) Scheme() Scheme { return c.scheme }

// Events returns all catalog events in display order. Callers must not
// mutate the returned slice.
func (c *Catalog) Events() []Event { return c.events }

// Lookup returns the event with the given id.
func (c *Catalog) Lookup(id string) (Event, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Contains reports whether id names a catalog event.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Size returns the number of events in the catalog.
func (c *Catalog) Size() int { return len(c.events) }

// RequiredPicks returns the exact number of picks a submission must contain.
func (c *Catalog) RequiredPicks() int {
	if c.scheme == SchemeTiers {
		return tiersRequiredPicks
	}
	return periodsRequiredPicks
}

// PerPeriodQuota returns the exact pick count required in each period, or 0
// when the scheme has no per-group distribution rule.
func (c *Catalog) PerPeriodQuota() int {
	if c.scheme == SchemePeriods {
		return periodsPerPeriod
	}
	return 0
}

// BonusPeriods returns the periods that award a quarter shell when any pick
// in them hits. FG is observational only and never awards a shell.
func (c *Catalog) BonusPeriods() []Period {
	return []Period{PeriodQ1, PeriodQ2, PeriodQ3, PeriodQ4}
}
