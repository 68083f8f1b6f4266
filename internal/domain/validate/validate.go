// Package validate implements the submission validation rules.
//
// Validation runs in a fixed order and short-circuits on the first failure.
// Each failure carries a machine-readable reason so the API layer can map it
// to the right status code and the client can show a specific message.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/domain/game"
)

// Length bounds for free-text fields, counted in runes so multibyte names
// are not penalized for their encoding.
const (
	MaxNameLength       = 40
	MaxTiebreakerLength = 100
)

// Request is a candidate submission before validation.
type Request struct {
	Name       string
	Picks      []string
	Tiebreaker string
}

// NameChecker reports whether a normalized player name is already taken.
// The check is advisory: the storage layer re-verifies at write time with a
// conditional write, so a race between two same-name submissions still
// resolves to exactly one winner.
type NameChecker func(normalized string) bool

// Submission validates a candidate submission against the catalog and game
// rules. On success it returns the trimmed name and tiebreaker, ready for
// persistence. On failure it returns a *Error with a distinct Reason.
//
// The lock state is checked first: a locked game refuses even well-formed
// payloads. The name-collision check runs last, only once the submission is
// known to be otherwise valid.
func Submission(cat *catalog.Catalog, locked bool, req Request, nameTaken NameChecker) (name, tiebreaker string, err error) {
	if locked {
		return "", "", NewError(ReasonLocked, "Submissions are closed")
	}

	name = strings.TrimSpace(req.Name)
	if name == "" {
		return "", "", NewError(ReasonNameRequired, "Name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", "", NewError(ReasonNameTooLong, fmt.Sprintf("Name must be %d characters or less", MaxNameLength))
	}

	tiebreaker = strings.TrimSpace(req.Tiebreaker)
	if utf8.RuneCountInString(tiebreaker) > MaxTiebreakerLength {
		return "", "", NewError(ReasonTiebreakerTooLong, fmt.Sprintf("Tiebreaker must be %d characters or less", MaxTiebreakerLength))
	}

	required := cat.RequiredPicks()
	if len(req.Picks) != required {
		return "", "", NewError(ReasonPickCount, fmt.Sprintf("Exactly %d picks required", required))
	}

	seen := make(map[string]struct{}, len(req.Picks))
	for _, id := range req.Picks {
		if _, dup := seen[id]; dup {
			return "", "", NewError(ReasonDuplicatePick, "Duplicate picks not allowed")
		}
		seen[id] = struct{}{}
	}

	for _, id := range req.Picks {
		if !cat.Contains(id) {
			return "", "", NewError(ReasonUnknownPick, fmt.Sprintf("Invalid pick ID: %s", id))
		}
	}

	if quota := cat.PerPeriodQuota(); quota > 0 {
		counts := make(map[catalog.Period]int)
		for _, id := range req.Picks {
			ev, _ := cat.Lookup(id)
			counts[ev.Period]++
		}
		for _, p := range catalog.PeriodsOrder {
			n, represented := counts[p]
			if represented && n != quota {
				return "", "", NewError(ReasonPeriodQuota,
					fmt.Sprintf("Exactly %d picks required per period (%s has %d)", quota, p, n))
			}
		}
	}

	if nameTaken != nil && nameTaken(game.NormalizeName(name)) {
		return "", "", NewError(ReasonNameTaken, "Name already taken")
	}

	return name, tiebreaker, nil
}
