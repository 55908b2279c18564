package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coder/websocket"

	"github.com/avoronov/go-chore-sync/internal/broadcast"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/models"
)

// channel upgrades the request to a WebSocket and keeps it registered on
// the hub until the client goes away. Besides receiving change
// notifications, a client may submit writes over the socket with a
// {"action":"put","data":{...}} frame; the write is acknowledged to the
// sender and broadcast to everyone else.
func (h *Handler) channel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The dashboard is served from LAN addresses the server cannot
		// know in advance.
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.channel").Msg("websocket upgrade failed")
		return
	}

	conn := h.hub.Register(ws)
	defer func() {
		h.hub.Unregister(conn)
		ws.Close(websocket.StatusNormalClosure, "")
	}()

	ctx := r.Context()
	for {
		_, raw, err := ws.Read(ctx)
		if err != nil {
			var closeErr websocket.CloseError
			if !errors.As(err, &closeErr) && ctx.Err() == nil {
				log.Debug().Err(err).Msg("channel read failed")
			}
			return
		}

		h.handleChannelRequest(ctx, conn, raw, log)
	}
}

func (h *Handler) handleChannelRequest(ctx context.Context, conn *broadcast.Connection, raw []byte, log *logger.Logger) {
	var req models.ChannelRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.sendChannelError(ctx, conn, "Invalid JSON was passed")
		return
	}

	switch req.Action {
	case models.ChannelActionPut:
		var candidate models.Document
		if err := json.Unmarshal(req.Data, &candidate); err != nil || candidate == nil {
			h.sendChannelError(ctx, conn, "data must be a JSON object")
			return
		}

		stamped, err := h.services.DocumentService.Replace(ctx, candidate, conn)
		if err != nil {
			log.Error().Err(err).Str("func", "*Handler.handleChannelRequest").Msg("error replacing document")
			h.sendChannelError(ctx, conn, "error replacing document")
			return
		}

		ack := models.ChannelMessage{Type: models.MessageTypeAck, Version: stamped.Version()}
		if err := conn.Send(ctx, ack); err != nil {
			log.Debug().Err(err).Msg("ack not delivered")
		}

	default:
		h.sendChannelError(ctx, conn, "unknown action")
	}
}

func (h *Handler) sendChannelError(ctx context.Context, conn *broadcast.Connection, message string) {
	msg := models.ChannelMessage{Type: models.MessageTypeError, Message: message}
	conn.Send(ctx, msg)
}
