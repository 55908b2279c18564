package adapter

import (
	"context"

	"github.com/avoronov/go-chore-sync/models"
)

// ServerAdapter is the client-side gateway to the sync server: the REST
// document endpoints plus the real-time notification channel.
type ServerAdapter interface {
	// Configured reports whether a server URL is set. When false the agent
	// stays Offline and never attempts network calls.
	Configured() bool

	// GetDocument fetches the current shared Document.
	GetDocument(ctx context.Context) (models.Document, error)

	// PutDocument replaces the shared Document wholesale and returns the
	// server-stamped result with its new version.
	PutDocument(ctx context.Context, doc models.Document) (models.Document, error)

	// Listen performs the notification channel handshake. On success it
	// returns a channel delivering decoded server frames; the channel is
	// closed when the connection drops or ctx is cancelled. A handshake
	// that fails or times out returns an error wrapping ErrHandshakeFailed.
	Listen(ctx context.Context) (<-chan models.ChannelMessage, error)
}
