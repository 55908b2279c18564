package http

import (
	"github.com/avoronov/go-chore-sync/internal/broadcast"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/service"
)

type Handler struct {
	services  *service.Services
	hub       *broadcast.Hub
	staticDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, hub *broadcast.Hub, staticDir string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		hub:       hub,
		staticDir: staticDir,
		logger:    logger,
	}
}
