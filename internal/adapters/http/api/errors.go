package api

import "errors"

// Sentinel kinds for API errors. Messages are user-facing.
var (
	ErrBadRequest       = errors.New("Invalid request body")
	ErrUnsupportedMedia = errors.New("Content-Type must be application/json")
	ErrUnauthorized     = errors.New("Unauthorized")
	ErrUnknownEvent     = errors.New("Unknown event id")
)
