package service

import (
	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/store"
)

type Services struct {
	DocumentService DocumentService
	AppInfoService  AppInfoService
}

func NewServices(documents store.DocumentStore, notifier ChangeNotifier, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		DocumentService: NewDocumentService(documents, notifier, logger),
		AppInfoService:  NewAppInfoService(cfg, logger),
	}
}
