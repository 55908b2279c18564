package client

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/service"
	"github.com/avoronov/go-chore-sync/internal/workers"
)

type App struct {
	services *service.ClientServices
	cfg      config.ClientWorkers

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, cfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	return &App{
		services: services,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run launches the sync agent and its background jobs, then blocks until
// the process receives a stop signal.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	workers.NewClientWorkers(ctx, a.services, a.cfg, a.logger).Run()
	a.logger.Info().Msg("sync agent running")

	<-ctx.Done()

	a.services.SyncJob.Stop()
	a.services.SyncAgent.Stop()
	a.logger.Info().Msg("sync agent stopped gracefully")

	return nil
}
