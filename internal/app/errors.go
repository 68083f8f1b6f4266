package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnknownEvent means an outcome toggle referenced an id outside the
	// catalog.
	ErrUnknownEvent = errors.New("unknown event id")
)
