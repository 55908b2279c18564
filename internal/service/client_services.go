package service

import (
	"github.com/avoronov/go-chore-sync/internal/adapter"
	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/store"
)

type ClientServices struct {
	SyncAgent ClientSyncAgent
	SyncJob   ClientSyncJob
}

func NewClientServices(localStore store.LocalStorage, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	agent := NewClientSyncAgent(localStore, serverAdapter, cfg.Workers, logger)

	return &ClientServices{
		SyncAgent: agent,
		SyncJob:   NewClientSyncJob(agent, logger),
	}
}
