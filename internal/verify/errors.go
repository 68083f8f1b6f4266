package verify

import "errors"

// Sentinel kinds for verification errors.
var (
	ErrUpstream           = errors.New("upstream fetch failed")
	ErrBadAnalyzerOutput  = errors.New("analyzer returned unusable output")
	ErrMissingAPIKey      = errors.New("missing analyzer api key")
	ErrNoSourceConfigured = errors.New("no game data source configured")
	ErrPendingApproval    = errors.New("a verification result is pending approval")
	ErrNothingPending     = errors.New("no pending verification")
	ErrInvalidPeriod      = errors.New("invalid period")
)
