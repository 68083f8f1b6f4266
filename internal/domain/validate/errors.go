package validate

import "errors"

// Reason identifies a distinct validation failure category.
type Reason string

// Validation failure reasons. BadShape is produced by the API layer for
// malformed JSON or wrongly typed fields; the rest come from Submission.
const (
	// ReasonUnknown means the error was not a validation failure at all.
	ReasonUnknown           Reason = ""
	ReasonBadShape          Reason = "bad_shape"
	ReasonLocked            Reason = "locked"
	ReasonNameRequired      Reason = "name_required"
	ReasonNameTooLong       Reason = "name_too_long"
	ReasonTiebreakerTooLong Reason = "tiebreaker_too_long"
	ReasonPickCount         Reason = "pick_count"
	ReasonDuplicatePick     Reason = "duplicate_pick"
	ReasonUnknownPick       Reason = "unknown_pick"
	ReasonPeriodQuota       Reason = "period_quota"
	ReasonNameTaken         Reason = "name_taken"
)

// Error is a validation failure with a machine-readable reason and a
// user-facing message.
type Error struct {
	Reason  Reason
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds a validation error for the given reason.
func NewError(reason Reason, message string) *Error {
	return &Error{Reason: reason, Message: message}
}

// ReasonOf extracts the reason from err, or ReasonUnknown when err is not a
// validation error.
func ReasonOf(err error) Reason {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ReasonUnknown
}

// IsConflict reports whether err is a name-collision failure. Conflicts map
// to 409 rather than 400: the payload itself was well-formed.
func IsConflict(err error) bool {
	return ReasonOf(err) == ReasonNameTaken
}

// IsLocked reports whether err is a submissions-closed failure.
func IsLocked(err error) bool {
	return ReasonOf(err) == ReasonLocked
}
