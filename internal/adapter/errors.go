package adapter

import "errors"

// Sentinel errors for the server adapter. Callers match with [errors.Is];
// the sync agent converts all of them into state-machine transitions, never
// into user-facing failures.
var (
	// ErrNotConfigured is returned when no server URL is set.
	ErrNotConfigured = errors.New("no sync server configured")

	// ErrHandshakeFailed wraps a failed or timed-out channel handshake.
	ErrHandshakeFailed = errors.New("notification channel handshake failed")

	// ErrBadRequest maps HTTP 400: the server rejected the payload.
	ErrBadRequest = errors.New("server rejected request")

	// ErrInternalServerError maps HTTP 500: the server failed to persist.
	ErrInternalServerError = errors.New("server internal error")

	// ErrNotFound maps HTTP 404.
	ErrNotFound = errors.New("not found on server")
)
