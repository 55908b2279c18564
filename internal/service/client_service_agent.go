package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avoronov/go-chore-sync/internal/adapter"
	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/store"
	"github.com/avoronov/go-chore-sync/models"
)

// clientSyncAgent is the default ClientSyncAgent implementation.
//
// All pushes and pulls happen inside a single background goroutine, so at
// most one sync round trip is in flight at a time. Mutations arriving
// while a push is outstanding bump dirtySeq; the push result is then
// discarded locally and a follow-up push is scheduled, which naturally
// coalesces any number of overlapping mutations into one pending intent.
type clientSyncAgent struct {
	localStore store.LocalStorage
	adapter    adapter.ServerAdapter
	cfg        config.ClientWorkers
	log        *logger.Logger

	// docMu serializes read-modify-write cycles on the local state so
	// concurrent Apply calls and remote adoption never lose updates.
	docMu sync.Mutex

	mu          sync.Mutex
	state       AgentState
	pending     bool
	dirtySeq    uint64
	subscribers []chan ConnectionHealth
	cancel      context.CancelFunc

	pushCh      chan struct{}
	resyncCh    chan struct{}
	reconnectCh chan struct{}

	wg sync.WaitGroup
}

// NewClientSyncAgent builds the agent. It is idle (Offline) until Start.
func NewClientSyncAgent(localStore store.LocalStorage, serverAdapter adapter.ServerAdapter, cfg config.ClientWorkers, log *logger.Logger) ClientSyncAgent {
	return &clientSyncAgent{
		localStore:  localStore,
		adapter:     serverAdapter,
		cfg:         cfg,
		log:         log,
		state:       StateOffline,
		pushCh:      make(chan struct{}, 1),
		resyncCh:    make(chan struct{}, 1),
		reconnectCh: make(chan struct{}, 1),
	}
}

func (a *clientSyncAgent) Start(ctx context.Context) {
	a.mu.Lock()
	if a.cancel != nil {
		a.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.wg.Add(1)
	a.mu.Unlock()

	go a.run(runCtx)
}

func (a *clientSyncAgent) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	a.wg.Wait()
}

// run drives the state machine: Connecting → Connected until the
// connection drops, then Disconnected with bounded exponential backoff
// before the next attempt. Without a configured server the agent parks in
// Offline.
func (a *clientSyncAgent) run(ctx context.Context) {
	defer a.wg.Done()

	if !a.adapter.Configured() {
		a.setState(StateOffline)
		<-ctx.Done()
		return
	}

	minDelay := a.cfg.ReconnectMinDelay
	if minDelay <= 0 {
		minDelay = config.DefaultReconnectMin
	}
	maxDelay := a.cfg.ReconnectMaxDelay
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	delay := minDelay

	for {
		a.setState(StateConnecting)
		notes, err := a.adapter.Listen(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			a.log.Debug().Err(err).Dur("retry_in", delay).Msg("handshake failed")
			a.setState(StateDisconnected)
			if !a.waitRetry(ctx, delay) {
				return
			}
			delay = nextDelay(delay, maxDelay)
			continue
		}

		delay = minDelay
		a.setState(StateConnected)
		a.serveConnected(ctx, notes)

		if ctx.Err() != nil {
			return
		}
		a.setState(StateDisconnected)
		if !a.waitRetry(ctx, delay) {
			return
		}
		delay = nextDelay(delay, maxDelay)
	}
}

// serveConnected handles the Connected state: flush anything pending from
// the offline period, then react to change notifications, push triggers
// and periodic resyncs until the connection fails.
func (a *clientSyncAgent) serveConnected(ctx context.Context, notes <-chan models.ChannelMessage) {
	if err := a.reconcile(ctx); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-notes:
			if !ok {
				a.log.Debug().Msg("notification channel dropped")
				return
			}
			if msg.Type != models.MessageTypeDataChanged {
				continue
			}
			if err := a.reconcile(ctx); err != nil {
				return
			}

		case <-a.pushCh:
			if err := a.push(ctx); err != nil {
				return
			}

		case <-a.resyncCh:
			if err := a.reconcile(ctx); err != nil {
				return
			}

		case <-a.reconnectCh:
			// A retry-now request that arrived while already Connected is
			// stale. Consume it here so it cannot linger and cut short the
			// backoff wait of a later disconnect.
		}
	}
}

// reconcile pulls the latest Document and merges by replacement. A pending
// intent means local unpushed changes exist; those win over the pulled
// state (last-local-writer-wins), so the agent re-pushes instead of
// adopting.
func (a *clientSyncAgent) reconcile(ctx context.Context) error {
	if a.PendingIntent() {
		return a.push(ctx)
	}

	pulled, err := a.adapter.GetDocument(ctx)
	if err != nil {
		a.log.Debug().Err(err).Msg("pull failed")
		return err
	}

	// Another device's per-device keys must not leak into local state.
	shared, _ := pulled.SplitDeviceFields()

	a.docMu.Lock()
	defer a.docMu.Unlock()

	// A mutation may have slipped in while the pull was in flight; its
	// intent takes precedence over the pulled state.
	if a.PendingIntent() {
		a.schedulePush()
		return nil
	}

	if err := a.localStore.SaveDocument(ctx, shared); err != nil {
		a.log.Error().Err(err).Msg("saving pulled document failed")
		return nil
	}
	a.log.Debug().Int64("version", shared.Version()).Msg("adopted remote document")

	return nil
}

// push uploads the full local Document. On success the stamped result is
// adopted locally and the intent cleared, unless a newer mutation arrived
// during the round trip, in which case the intent survives and another
// push is scheduled. On failure the intent is always retained.
func (a *clientSyncAgent) push(ctx context.Context) error {
	a.mu.Lock()
	if !a.pending {
		a.mu.Unlock()
		return nil
	}
	seq := a.dirtySeq
	a.mu.Unlock()

	local, err := a.localStore.LoadDocument(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("loading local document failed")
		return nil
	}
	shared, _ := local.SplitDeviceFields()

	stamped, err := a.adapter.PutDocument(ctx, shared)
	if err != nil {
		a.log.Debug().Err(err).Msg("push failed, intent retained")
		return err
	}

	a.docMu.Lock()
	defer a.docMu.Unlock()

	a.mu.Lock()
	clean := a.dirtySeq == seq
	if clean {
		a.pending = false
	}
	a.mu.Unlock()

	if !clean {
		a.schedulePush()
		return nil
	}

	stampedShared, _ := stamped.SplitDeviceFields()
	if err := a.localStore.SaveDocument(ctx, stampedShared); err != nil {
		a.log.Error().Err(err).Msg("saving stamped document failed")
	}
	a.log.Debug().Int64("version", stamped.Version()).Msg("pushed local changes")

	return nil
}

func (a *clientSyncAgent) Apply(ctx context.Context, mutate func(doc models.Document)) error {
	a.docMu.Lock()
	defer a.docMu.Unlock()

	doc, err := a.localStore.LoadDocument(ctx)
	if err != nil {
		return fmt.Errorf("load local document: %w", err)
	}

	mutate(doc)

	if err := a.localStore.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("save local document: %w", err)
	}

	if a.adapter.Configured() {
		a.mu.Lock()
		a.pending = true
		a.dirtySeq++
		a.mu.Unlock()

		a.schedulePush()
	}

	return nil
}

func (a *clientSyncAgent) Document(ctx context.Context) (models.Document, error) {
	doc, err := a.localStore.LoadDocument(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local document: %w", err)
	}
	device, err := a.localStore.LoadDeviceFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("load device fields: %w", err)
	}

	return doc.MergeDeviceFields(device), nil
}

func (a *clientSyncAgent) SetDeviceField(ctx context.Context, key string, value any) error {
	a.docMu.Lock()
	defer a.docMu.Unlock()

	device, err := a.localStore.LoadDeviceFields(ctx)
	if err != nil {
		return fmt.Errorf("load device fields: %w", err)
	}
	device[key] = value

	if err := a.localStore.SaveDeviceFields(ctx, device); err != nil {
		return fmt.Errorf("save device fields: %w", err)
	}

	return nil
}

func (a *clientSyncAgent) Resync() {
	select {
	case a.resyncCh <- struct{}{}:
	default:
	}
}

func (a *clientSyncAgent) Reconnect() {
	select {
	case a.reconnectCh <- struct{}{}:
	default:
	}
}

func (a *clientSyncAgent) Health() ConnectionHealth {
	a.mu.Lock()
	defer a.mu.Unlock()

	return ConnectionHealth{State: a.state, Connected: a.state == StateConnected}
}

func (a *clientSyncAgent) Subscribe() <-chan ConnectionHealth {
	ch := make(chan ConnectionHealth, 8)

	a.mu.Lock()
	a.subscribers = append(a.subscribers, ch)
	a.mu.Unlock()

	return ch
}

func (a *clientSyncAgent) PendingIntent() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.pending
}

func (a *clientSyncAgent) schedulePush() {
	select {
	case a.pushCh <- struct{}{}:
	default:
	}
}

func (a *clientSyncAgent) setState(s AgentState) {
	a.mu.Lock()
	if a.state == s {
		a.mu.Unlock()
		return
	}
	a.state = s
	subscribers := make([]chan ConnectionHealth, len(a.subscribers))
	copy(subscribers, a.subscribers)
	a.mu.Unlock()

	health := ConnectionHealth{State: s, Connected: s == StateConnected}
	a.log.Info().Str("state", string(s)).Msg("sync state changed")

	for _, ch := range subscribers {
		select {
		case ch <- health:
		default:
		}
	}
}

// waitRetry blocks for the backoff delay, a manual reconnect, or shutdown.
// Returns false when the agent should exit.
func (a *clientSyncAgent) waitRetry(ctx context.Context, delay time.Duration) bool {
	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	case <-a.reconnectCh:
		return true
	}
}

func nextDelay(d, max time.Duration) time.Duration {
	d *= 2
	if d > max {
		return max
	}
	return d
}
