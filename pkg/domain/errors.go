package domain

import "errors"

// ErrTimeout is returned when the completion endpoint does not answer within the configured deadline.
var ErrTimeout = errors.New("completion timed out")

// ErrCompletionFailed is returned when the completion endpoint fails or answers with no content.
var ErrCompletionFailed = errors.New("completion failed")

// ErrBusy is returned when input arrives while a previous request of the same session is in flight.
// The input is dropped, never queued.
var ErrBusy = errors.New("session busy")

// ErrUnknownMode is returned when a mode identifier is not registered.
var ErrUnknownMode = errors.New("unknown mode")

// ErrSessionNotFound is returned when a session ID cannot be found.
var ErrSessionNotFound = errors.New("session not found")
