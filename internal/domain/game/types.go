// Package game contains domain models passed between layers.
package game

import "strings"

// Player is a persisted participant record. Name and picks are fixed at
// submission time; there is no edit path.
type Player struct {
	Name       string   `json:"name"`
	Picks      []string `json:"picks"`
	Tiebreaker string   `json:"tiebreaker"`
	TS         int64    `json:"ts"` // unix milliseconds, assigned at persistence time
}

// Outcomes maps event id to whether the event occurred. A missing key means
// the event has not occurred. This map is the single source of truth for
// scoring.
type Outcomes map[string]bool

// Hit reports whether the event with the given id has occurred.
func (o Outcomes) Hit(id string) bool { return o[id] }

// State is the small record gating submissions and tracking verified periods.
type State struct {
	GameID          string   `json:"gameId"`
	Locked          bool     `json:"locked"`
	PeriodsVerified []string `json:"periodsVerified"`
}

// ScoredPlayer is a Player plus derived scoring results. It is recomputed
// from scratch on every read and never persisted.
type ScoredPlayer struct {
	Player

	CorrectCount int `json:"correctCount"`

	// Period-variant bonus: one shell per winning quarter.
	QuarterShells int `json:"quarterShells"`

	// Tier-variant bonuses.
	FreeShells int `json:"freeShells"`
	Shells3    int `json:"shells3"`

	// Placement. Rank is nil for players outside the prize-eligible top-N
	// or with zero correct picks.
	Rank        *int     `json:"rank"`
	TabDiscount int      `json:"tabDiscount"`
	Prizes      []string `json:"prizes"`
}

// NormalizeName lowercases and trims a player name for case-insensitive
// comparison and storage keying.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
