package store

import (
	"context"

	"github.com/avoronov/go-chore-sync/models"
)

// DocumentStore owns the authoritative shared Document and its version
// counter on the server side.
type DocumentStore interface {
	// Read returns the last persisted Document, or an empty initial
	// Document if nothing has been written yet.
	Read(ctx context.Context) (models.Document, error)

	// Write replaces the persisted Document with candidate, stamping
	// _version = previous + 1 (1 on the first write), and returns the
	// stamped Document. Writes are serialized and all-or-nothing: on
	// error the previously persisted Document and version are untouched.
	Write(ctx context.Context, candidate models.Document) (models.Document, error)
}

// LocalStorage is the client-side persistent state: the last known shared
// Document under a single well-known key, plus the per-device fields kept
// outside synchronization.
type LocalStorage interface {
	// LoadDocument returns the locally stored shared Document, or an empty
	// Document if none has been saved yet.
	LoadDocument(ctx context.Context) (models.Document, error)

	// SaveDocument persists the shared Document locally. Called on every
	// local mutation so the UI state survives restarts and offline periods.
	SaveDocument(ctx context.Context, doc models.Document) error

	// LoadDeviceFields returns the per-device fields (selected user, theme).
	LoadDeviceFields(ctx context.Context) (models.DeviceFields, error)

	// SaveDeviceFields persists the per-device fields.
	SaveDeviceFields(ctx context.Context, fields models.DeviceFields) error
}
