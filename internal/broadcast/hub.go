// Package broadcast maintains the set of live WebSocket connections and
// fans out "data changed" notifications to them after every successful
// write. Connections carry no identity: the hub is a pure fan-out list,
// not a session registry. No backlog is replayed on connect; a fresh
// client is expected to follow up with its own GET /data.
package broadcast

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/models"
)

const defaultSendTimeout = 5 * time.Second

// Connection is one registered subscriber. It serializes writes to the
// underlying socket so notification fan-out and direct replies (acks,
// errors) never interleave.
type Connection struct {
	ws *websocket.Conn

	writeMu sync.Mutex
}

// Send writes one channel frame to this subscriber.
func (c *Connection) Send(ctx context.Context, msg models.ChannelMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.ws.Write(ctx, websocket.MessageText, raw)
}

// Hub is the broadcast channel: a concurrency-safe connection set with
// notification fan-out.
type Hub struct {
	log         *logger.Logger
	sendTimeout time.Duration

	mu    sync.RWMutex
	conns map[*Connection]struct{}
}

// NewHub builds an empty Hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:         log,
		sendTimeout: defaultSendTimeout,
		conns:       make(map[*Connection]struct{}),
	}
}

// Register adds a live socket to the fan-out list and returns its
// Connection handle.
func (h *Hub) Register(ws *websocket.Conn) *Connection {
	conn := &Connection{ws: ws}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()

	h.log.Debug().Int("connections", total).Msg("client connected")
	return conn
}

// Unregister removes the connection from the fan-out list. Safe to call
// more than once.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	_, present := h.conns[conn]
	delete(h.conns, conn)
	total := len(h.conns)
	h.mu.Unlock()

	if present {
		h.log.Debug().Int("connections", total).Msg("client disconnected")
	}
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// NotifyAll sends a data-changed signal carrying the new version to every
// registered connection except the optional originator. A send failure on
// one connection drops only that connection; delivery to the others is
// unaffected.
func (h *Hub) NotifyAll(ctx context.Context, version int64, excluding *Connection) {
	msg := models.ChannelMessage{Type: models.MessageTypeDataChanged, Version: version}

	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.conns))
	for conn := range h.conns {
		if conn == excluding {
			continue
		}
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	// Sends run concurrently so one stalled subscriber delays the caller by
	// at most one send timeout, not one per subscriber.
	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Add(1)
		go func(conn *Connection) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, h.sendTimeout)
			err := conn.Send(sendCtx, msg)
			cancel()

			if err != nil {
				h.log.Debug().Err(err).Msg("dropping unreachable client")
				h.Unregister(conn)
				conn.ws.Close(websocket.StatusAbnormalClosure, "send failed")
			}
		}(conn)
	}
	wg.Wait()

	h.log.Debug().Int64("version", version).Int("notified", len(conns)).Msg("change broadcast")
}

// CloseAll disconnects every registered client, used on server shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[*Connection]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		conn.ws.Close(websocket.StatusGoingAway, "server shutting down")
	}
}
