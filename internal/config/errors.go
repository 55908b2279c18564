package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates invalid server settings (for
	// example, a missing listen address or non-positive request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAgentConfigs indicates invalid agent transport settings.
	ErrInvalidAgentConfigs = errors.New("invalid agent configuration")
	// ErrInvalidWorkerConfigs indicates invalid background job settings
	// (for example, a zero resync interval or inverted backoff bounds).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
