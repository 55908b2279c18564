package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withCORS)
	router.Use(withGZip)

	router.Get("/data", h.getData)
	router.Put("/data", h.putData)
	router.Get("/version", h.getServerVersion)
	router.Get("/healthz", h.healthz)
	router.Get("/ws", h.channel)

	// Everything else is the dashboard itself.
	router.NotFound(h.serveStatic)

	return router
}
