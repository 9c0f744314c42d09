package store

import "errors"

// Sentinel errors surfaced to the API layer. Handlers map these to HTTP
// status codes; anything else is an internal failure.
var (
	// ErrNotFound means no record matched the given id.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means the record exists but its current state does not
	// allow the requested transition (released, returned, timed out).
	ErrConflict = errors.New("state transition not allowed")

	// ErrConditionNotSet means a repair cannot be released because its
	// condition has not been recorded yet.
	ErrConditionNotSet = errors.New("repair condition not set")
)
