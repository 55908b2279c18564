package store

import (
	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
)

// NewDocumentStore picks the server-side backend from config: file-backed
// when a data file path is configured, in-memory for ":memory:".
func NewDocumentStore(cfg config.Storage, log *logger.Logger) (DocumentStore, error) {
	if cfg.DataFilePath == "" || cfg.DataFilePath == MemoryStatePath {
		log.Warn().Msg("no data file configured, document will not survive restarts")
		return NewMemoryDocumentStore(), nil
	}

	return NewFileDocumentStore(cfg.DataFilePath, log)
}
