package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/go-resty/resty/v2"

	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/models"
)

const channelPath = "/ws"

type httpServerAdapter struct {
	client  *resty.Client
	wsURL   string
	timeout time.Duration

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the REST + WebSocket gateway for the given
// agent configuration. An empty server URL yields an unconfigured adapter:
// Configured() returns false and every call fails with ErrNotConfigured,
// which the agent treats as permanent Offline mode.
func NewHTTPServerAdapter(cfg config.ClientAgent, logger *logger.Logger) (ServerAdapter, error) {
	if cfg.ServerURL == "" {
		return &httpServerAdapter{logger: logger}, nil
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	baseURL := strings.TrimRight(cfg.ServerURL, "/")
	wsURL, err := channelURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("derive channel url: %w", err)
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpServerAdapter{
		client:  cli,
		wsURL:   wsURL,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (h *httpServerAdapter) Configured() bool {
	return h.client != nil
}

func (h *httpServerAdapter) GetDocument(ctx context.Context) (models.Document, error) {
	if !h.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := h.client.R().
		SetContext(ctx).
		Get("/data")
	if err != nil {
		return nil, fmt.Errorf("get document request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var doc models.Document
	if err = json.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		doc = models.Document{}
	}

	return doc, nil
}

func (h *httpServerAdapter) PutDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	if !h.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc).
		Put("/data")
	if err != nil {
		return nil, fmt.Errorf("put document request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var stamped models.Document
	if err = json.Unmarshal(resp.Body(), &stamped); err != nil {
		return nil, fmt.Errorf("decode stamped document: %w", err)
	}

	return stamped, nil
}

func (h *httpServerAdapter) Listen(ctx context.Context) (<-chan models.ChannelMessage, error) {
	if !h.Configured() {
		return nil, ErrNotConfigured
	}

	dialCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	ws, _, err := websocket.Dial(dialCtx, h.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}

	notes := make(chan models.ChannelMessage)
	go func() {
		defer close(notes)
		defer ws.Close(websocket.StatusNormalClosure, "")

		for {
			_, raw, err := ws.Read(ctx)
			if err != nil {
				return
			}

			var msg models.ChannelMessage
			if err = json.Unmarshal(raw, &msg); err != nil {
				h.logger.Debug().Err(err).Msg("skipping undecodable channel frame")
				continue
			}

			select {
			case notes <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return notes, nil
}

// channelURL turns the REST base URL into the matching WebSocket endpoint:
// http → ws, https → wss, path /ws.
func channelURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + channelPath

	return u.String(), nil
}
