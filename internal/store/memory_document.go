package store

import (
	"context"
	"sync"

	"github.com/avoronov/go-chore-sync/models"
)

// memoryDocumentStore holds the Document in process memory. Used by tests
// and when the server is started without a data file path.
type memoryDocumentStore struct {
	mu      sync.Mutex
	version int64
	doc     models.Document
}

// NewMemoryDocumentStore builds a DocumentStore with no durability. State is
// lost on restart.
func NewMemoryDocumentStore() DocumentStore {
	return &memoryDocumentStore{doc: models.Document{}}
}

func (s *memoryDocumentStore) Read(ctx context.Context) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.Clone(), nil
}

func (s *memoryDocumentStore) Write(ctx context.Context, candidate models.Document) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	stamped := candidate.Clone()
	if stamped == nil {
		stamped = models.Document{}
	}
	stamped[models.VersionKey] = s.version
	s.doc = stamped

	return stamped.Clone(), nil
}
