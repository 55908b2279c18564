package http

import (
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/avoronov/go-chore-sync/internal/broadcast"
	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/service"
	"github.com/avoronov/go-chore-sync/internal/store"
)

// newTestRouter wires a full handler stack against an in-memory document
// store and a live hub, so tests exercise the same path production does.
func newTestRouter(t *testing.T, staticDir string) (*chi.Mux, *broadcast.Hub) {
	t.Helper()

	log := logger.Nop()
	hub := broadcast.NewHub(log)
	documents := store.NewMemoryDocumentStore()
	services := service.NewServices(documents, hub, config.App{Version: "test-version"}, log)

	return NewHandler(services, hub, staticDir, log).Init(), hub
}

func newTestServer(t *testing.T, staticDir string) (*httptest.Server, *broadcast.Hub) {
	t.Helper()

	router, hub := newTestRouter(t, staticDir)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, hub
}
