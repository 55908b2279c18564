package store

import "errors"

// Sentinel errors returned by the document and local state stores. Callers
// match against them with [errors.Is]; the HTTP layer maps them to status
// codes.
var (
	// ErrCorruptDocument is returned when the persisted document file exists
	// but cannot be parsed as JSON.
	ErrCorruptDocument = errors.New("persisted document is not valid JSON")

	// ErrDocumentNotPersisted is returned when a write to durable storage
	// fails. The previously persisted document remains intact.
	ErrDocumentNotPersisted = errors.New("document write failed")

	// ErrLocalStateNotPersisted is returned by the client state file when a
	// save fails. The in-memory state remains usable.
	ErrLocalStateNotPersisted = errors.New("local state write failed")

	// ErrCorruptLocalState is returned when the client state file exists but
	// cannot be parsed.
	ErrCorruptLocalState = errors.New("local state file is not valid JSON")
)
