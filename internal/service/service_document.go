package service

import (
	"context"
	"fmt"

	"github.com/avoronov/go-chore-sync/internal/broadcast"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/store"
	"github.com/avoronov/go-chore-sync/models"
)

type documentService struct {
	documents store.DocumentStore
	notifier  ChangeNotifier

	logger *logger.Logger
}

func NewDocumentService(documents store.DocumentStore, notifier ChangeNotifier, logger *logger.Logger) DocumentService {
	return &documentService{
		documents: documents,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *documentService) Get(ctx context.Context) (models.Document, error) {
	doc, err := s.documents.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	return doc, nil
}

// Replace is the single write path shared by PUT /data and the channel's
// put action. The notification goes out only after the store write
// succeeded, so clients are never told about a version that was not
// persisted.
func (s *documentService) Replace(ctx context.Context, candidate models.Document, origin *broadcast.Connection) (models.Document, error) {
	stamped, err := s.documents.Write(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	s.notifier.NotifyAll(ctx, stamped.Version(), origin)
	s.logger.Info().Int64("version", stamped.Version()).Msg("document replaced")

	return stamped, nil
}
