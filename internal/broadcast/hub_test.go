package broadcast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/models"
)

// hubHarness exposes a Hub behind a real WebSocket endpoint, the way the
// HTTP handler wires it in production.
type hubHarness struct {
	hub    *Hub
	server *httptest.Server

	registered chan *Connection
}

func newHubHarness(t *testing.T) *hubHarness {
	t.Helper()

	h := &hubHarness{
		hub:        NewHub(logger.Nop()),
		registered: make(chan *Connection, 8),
	}

	h.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		conn := h.hub.Register(ws)
		h.registered <- conn

		// Read loop: keep the connection alive until the peer closes.
		go func() {
			defer h.hub.Unregister(conn)
			for {
				if _, _, err := ws.Read(context.Background()); err != nil {
					return
				}
			}
		}()
	}))
	t.Cleanup(h.server.Close)

	return h
}

// dial connects a test client and returns the socket plus the server-side
// Connection handle.
func (h *hubHarness) dial(t *testing.T) (*websocket.Conn, *Connection) {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(h.server.URL, "http")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close(websocket.StatusNormalClosure, "") })

	select {
	case conn := <-h.registered:
		return ws, conn
	case <-time.After(5 * time.Second):
		t.Fatal("server never registered the connection")
		return nil, nil
	}
}

func readMessage(t *testing.T, ws *websocket.Conn) models.ChannelMessage {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, raw, err := ws.Read(ctx)
	require.NoError(t, err)

	var msg models.ChannelMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestHub_NotifyAll_DeliversToEveryClient(t *testing.T) {
	h := newHubHarness(t)

	wsA, _ := h.dial(t)
	wsB, _ := h.dial(t)

	h.hub.NotifyAll(context.Background(), 3, nil)

	for _, ws := range []*websocket.Conn{wsA, wsB} {
		msg := readMessage(t, ws)
		assert.Equal(t, models.MessageTypeDataChanged, msg.Type)
		assert.Equal(t, int64(3), msg.Version)
	}
}

func TestHub_NotifyAll_SkipsOriginator(t *testing.T) {
	h := newHubHarness(t)

	wsOrigin, connOrigin := h.dial(t)
	wsOther, _ := h.dial(t)

	h.hub.NotifyAll(context.Background(), 1, connOrigin)

	msg := readMessage(t, wsOther)
	assert.Equal(t, models.MessageTypeDataChanged, msg.Type)

	// The originator must receive nothing.
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, _, err := wsOrigin.Read(ctx)
	assert.Error(t, err, "originator should not be notified")
}

func TestHub_NotifyAll_IsolatesFailedConnection(t *testing.T) {
	h := newHubHarness(t)

	wsDead, _ := h.dial(t)
	wsLive, _ := h.dial(t)

	// Kill one client abruptly, then broadcast.
	require.NoError(t, wsDead.CloseNow())
	time.Sleep(50 * time.Millisecond)

	h.hub.NotifyAll(context.Background(), 7, nil)

	msg := readMessage(t, wsLive)
	assert.Equal(t, int64(7), msg.Version)
}

func TestHub_NotifyAll_ManyClientsFanOut(t *testing.T) {
	h := newHubHarness(t)

	const clients = 16
	sockets := make([]*websocket.Conn, 0, clients)
	for i := 0; i < clients; i++ {
		ws, _ := h.dial(t)
		sockets = append(sockets, ws)
	}

	start := time.Now()
	h.hub.NotifyAll(context.Background(), 9, nil)
	elapsed := time.Since(start)

	for _, ws := range sockets {
		msg := readMessage(t, ws)
		assert.Equal(t, models.MessageTypeDataChanged, msg.Type)
		assert.Equal(t, int64(9), msg.Version)
	}

	// Sends run per connection in parallel, so the caller is never held
	// for one timeout per subscriber.
	assert.Less(t, elapsed, h.hub.sendTimeout)
}

func TestHub_RegisterUnregister_Count(t *testing.T) {
	h := newHubHarness(t)

	_, connA := h.dial(t)
	h.dial(t)

	assert.Equal(t, 2, h.hub.Count())

	h.hub.Unregister(connA)
	assert.Equal(t, 1, h.hub.Count())

	// Unregister is idempotent.
	h.hub.Unregister(connA)
	assert.Equal(t, 1, h.hub.Count())
}

func TestConnection_Send_DirectReply(t *testing.T) {
	h := newHubHarness(t)

	ws, conn := h.dial(t)

	err := conn.Send(context.Background(), models.ChannelMessage{
		Type:    models.MessageTypeAck,
		Version: 4,
	})
	require.NoError(t, err)

	msg := readMessage(t, ws)
	assert.Equal(t, models.MessageTypeAck, msg.Type)
	assert.Equal(t, int64(4), msg.Version)
}
