package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrEmptyKey = errors.New("empty key")
	ErrClosed   = errors.New("store closed")
)
