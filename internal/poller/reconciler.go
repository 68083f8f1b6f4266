package poller

import (
	"github.com/o4villegas/gameday-bingo/internal/domain/game"
)

// Local-state keys for the submitted-player marker.
const (
	submittedKey  = "bingo:hasSubmitted"
	playerNameKey = "bingo:playerName"
)

// Reconciler keeps the local submitted-player marker consistent with the
// server's player list. If the server no longer knows the recorded name
// (deletion, reset), the marker is cleared so the client can submit again.
type Reconciler struct {
	state *Safe
}

// NewReconciler creates a reconciler over state.
func NewReconciler(state *Safe) *Reconciler {
	return &Reconciler{state: state}
}

// MarkSubmitted records a successful submission under the given name.
func (r *Reconciler) MarkSubmitted(name string) {
	r.state.Set(submittedKey, "true")
	r.state.Set(playerNameKey, name)
}

// Submitted returns the recorded player name and whether a submission
// marker exists.
func (r *Reconciler) Submitted() (string, bool) {
	if v, ok := r.state.Get(submittedKey); !ok || v != "true" {
		return "", false
	}
	name, ok := r.state.Get(playerNameKey)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Reconcile compares the marker against the authoritative player list.
// The lookup is case-insensitive to match server-side name uniqueness.
// With no marker set this is a no-op.
func (r *Reconciler) Reconcile(players []game.Player) {
	name, ok := r.Submitted()
	if !ok {
		return
	}

	normalized := game.NormalizeName(name)
	for _, p := range players {
		if game.NormalizeName(p.Name) == normalized {
			return
		}
	}

	// The player is gone server-side; self-heal the local marker.
	r.state.Delete(submittedKey)
	r.state.Delete(playerNameKey)
}
