package domain

import "errors"

// ErrNotFound is returned by content stores when an id names no row.
var ErrNotFound = errors.New("record not found")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
