package service

import (
	"context"

	"github.com/avoronov/go-chore-sync/internal/broadcast"
	"github.com/avoronov/go-chore-sync/models"
)

// DocumentService exposes the server-side operations on the shared
// Document: read the current state and replace it wholesale. There is no
// partial-update operation; the conflict model is last-writer-wins.
type DocumentService interface {
	// Get returns the current Document, or the empty initial Document when
	// nothing has been written yet.
	Get(ctx context.Context) (models.Document, error)

	// Replace persists candidate as the new Document, stamping the next
	// version, and broadcasts a change notification to every connected
	// client except origin (nil when the write arrived over REST).
	Replace(ctx context.Context, candidate models.Document, origin *broadcast.Connection) (models.Document, error)
}

// AppInfoService reports application metadata.
type AppInfoService interface {
	// GetAppVersion returns the running application version string.
	GetAppVersion(ctx context.Context) string
}

// ChangeNotifier is the broadcast contract consumed by DocumentService.
// *broadcast.Hub satisfies it; tests substitute a recorder.
type ChangeNotifier interface {
	NotifyAll(ctx context.Context, version int64, excluding *broadcast.Connection)
}
