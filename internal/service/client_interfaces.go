package service

import (
	"context"
	"time"

	"github.com/avoronov/go-chore-sync/models"
)

// AgentState enumerates the sync agent lifecycle states.
type AgentState string

const (
	// StateOffline: no server configured; all reads and writes are local.
	StateOffline AgentState = "offline"
	// StateConnecting: notification channel handshake in progress.
	StateConnecting AgentState = "connecting"
	// StateConnected: channel live; local writes are pushed, remote
	// changes are pulled and merged.
	StateConnected AgentState = "connected"
	// StateDisconnected: connection lost; local-only operation while the
	// reconnect backoff runs.
	StateDisconnected AgentState = "disconnected"
)

// ConnectionHealth is the derived connection indicator exposed to the UI.
type ConnectionHealth struct {
	State     AgentState
	Connected bool
}

// ClientSyncAgent keeps one device's local Document in sync with the
// server. Local mutations apply instantly to local storage and are pushed
// in the background; remote changes arrive via the notification channel
// and are pulled in. All network failures become state transitions, never
// surfaced errors: a mutation is at worst left as a pending intent to be
// re-pushed later.
type ClientSyncAgent interface {
	// Start launches the background connection loop. Idempotent until Stop.
	Start(ctx context.Context)

	// Stop cancels the background loop and blocks until it has exited.
	Stop()

	// Apply runs mutate against the current local shared Document, saves
	// the result locally, and schedules a push. The returned error only
	// reflects local storage problems; sync failures never surface here.
	Apply(ctx context.Context, mutate func(doc models.Document)) error

	// Document returns the local shared Document with the per-device
	// fields layered on top, ready for UI rendering.
	Document(ctx context.Context) (models.Document, error)

	// SetDeviceField updates a per-device setting (selected user, theme).
	// Device fields never participate in synchronization.
	SetDeviceField(ctx context.Context, key string, value any) error

	// Resync schedules a pull-and-reconcile cycle. A no-op unless
	// Connected.
	Resync()

	// Reconnect skips the remaining backoff delay after a disconnect.
	Reconnect()

	// Health returns the current connection indicator.
	Health() ConnectionHealth

	// Subscribe registers a health listener. Updates are delivered
	// best-effort; a slow listener misses intermediate states, never
	// blocks the agent.
	Subscribe() <-chan ConnectionHealth

	// PendingIntent reports whether a local mutation is still awaiting a
	// successful push.
	PendingIntent() bool
}

// ClientSyncJob periodically triggers an agent resync while running.
type ClientSyncJob interface {
	// Start launches the background ticker goroutine. It resyncs every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
