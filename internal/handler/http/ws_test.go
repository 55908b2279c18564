package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/go-chore-sync/models"
)

func dialChannel(t *testing.T, ctx context.Context, baseURL string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(baseURL, "http") + "/ws"
	ws, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close(websocket.StatusNormalClosure, "") })

	return ws
}

func readChannelMessage(t *testing.T, ctx context.Context, ws *websocket.Conn) models.ChannelMessage {
	t.Helper()

	_, raw, err := ws.Read(ctx)
	require.NoError(t, err)

	var msg models.ChannelMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestChannel_RestWriteNotifiesSubscribers(t *testing.T) {
	srv, hub := newTestServer(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws := dialChannel(t, ctx, srv.URL)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/data", strings.NewReader(`{"users":["Alice"]}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	msg := readChannelMessage(t, ctx, ws)
	assert.Equal(t, models.MessageTypeDataChanged, msg.Type)
	assert.Equal(t, int64(1), msg.Version)
}

func TestChannel_PutActionAcksSenderAndNotifiesOthers(t *testing.T) {
	srv, hub := newTestServer(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sender := dialChannel(t, ctx, srv.URL)
	observer := dialChannel(t, ctx, srv.URL)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 5*time.Millisecond)

	frame := `{"action":"put","data":{"chores":[{"name":"dishes"}]}}`
	require.NoError(t, sender.Write(ctx, websocket.MessageText, []byte(frame)))

	ack := readChannelMessage(t, ctx, sender)
	assert.Equal(t, models.MessageTypeAck, ack.Type)
	assert.Equal(t, int64(1), ack.Version)

	note := readChannelMessage(t, ctx, observer)
	assert.Equal(t, models.MessageTypeDataChanged, note.Type)
	assert.Equal(t, int64(1), note.Version)
}

func TestChannel_InvalidFrameGetsErrorReply(t *testing.T) {
	srv, hub := newTestServer(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws := dialChannel(t, ctx, srv.URL)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, ws.Write(ctx, websocket.MessageText, []byte(`not json`)))

	msg := readChannelMessage(t, ctx, ws)
	assert.Equal(t, models.MessageTypeError, msg.Type)
	assert.NotEmpty(t, msg.Message)
}

func TestChannel_UnknownActionGetsErrorReply(t *testing.T) {
	srv, hub := newTestServer(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws := dialChannel(t, ctx, srv.URL)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, ws.Write(ctx, websocket.MessageText, []byte(`{"action":"delete"}`)))

	msg := readChannelMessage(t, ctx, ws)
	assert.Equal(t, models.MessageTypeError, msg.Type)
}

func TestChannel_DisconnectUnregisters(t *testing.T) {
	srv, hub := newTestServer(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws := dialChannel(t, ctx, srv.URL)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	ws.Close(websocket.StatusNormalClosure, "")

	require.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 5*time.Millisecond)
}
