package main

import (
	"fmt"

	"github.com/avoronov/go-chore-sync/internal/broadcast"
	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/handler"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/server"
	"github.com/avoronov/go-chore-sync/internal/service"
	"github.com/avoronov/go-chore-sync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("chore-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	documents, err := store.NewDocumentStore(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating document store")
	}

	hub := broadcast.NewHub(log)
	services := service.NewServices(documents, hub, cfg.App, log)

	handlers, err := handler.NewHandlers(services, hub, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, hub, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
