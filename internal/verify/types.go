// Package verify defines the event-verification subsystem: an external
// analyzer inspects play-by-play text for one period and proposes outcome
// flips, which an admin must approve before they touch the outcome map.
package verify

import (
	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
)

// Confidence grades an analyzer's certainty about a single event.
type Confidence string

// Confidence levels. Low-confidence results are never applied, even when
// approved.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Result status values.
const (
	StatusCompleted = "completed"
	StatusError     = "error"
)

// EventVerification is the analyzer's verdict on one catalog event.
type EventVerification struct {
	EventID    string     `json:"eventId"`
	EventName  string     `json:"eventName"`
	Occurred   bool       `json:"occurred"`
	Confidence Confidence `json:"confidence"`
	Reasoning  string     `json:"reasoning"`
}

// Result is one verification run over a single period.
type Result struct {
	ID        string              `json:"id"`
	Period    catalog.Period      `json:"period"`
	Timestamp int64               `json:"timestamp"`
	Events    []EventVerification `json:"events"`
	Summary   string              `json:"summary"`
	Status    string              `json:"status"`
	Error     string              `json:"error,omitempty"`
}

// State is the persisted verification queue: at most one result pending
// approval, plus the history of applied results.
type State struct {
	PendingApproval *Result  `json:"pendingApproval"`
	AppliedResults  []Result `json:"appliedResults"`
}

// Approvable reports whether a single event verdict may be applied to the
// outcome map. Application is monotonic: only confident "occurred" verdicts
// flip an outcome, and only ever from false to true.
func Approvable(ev EventVerification) bool {
	return ev.Occurred && ev.Confidence != ConfidenceLow
}
