package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/models"
)

// fileDocumentStore keeps the shared Document in a single JSON file on
// disk. Writes are serialized by a mutex so no two writers can compute the
// same next version, and persisted through a temp-file rename so a failed
// write never corrupts the previous file.
type fileDocumentStore struct {
	path string
	log  *logger.Logger

	mu      sync.Mutex
	loaded  bool
	version int64
}

// NewFileDocumentStore builds a DocumentStore persisting to path. The parent
// directory is created if missing. The file itself is created lazily on the
// first write; until then Read returns an empty initial Document.
func NewFileDocumentStore(path string, log *logger.Logger) (DocumentStore, error) {
	if path == "" {
		return nil, fmt.Errorf("document store: empty data file path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("document store: create data dir: %w", err)
		}
	}

	return &fileDocumentStore{path: path, log: log}, nil
}

func (s *fileDocumentStore) Read(ctx context.Context) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLocked()
}

func (s *fileDocumentStore) Write(ctx context.Context, candidate models.Document) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		current, err := s.readLocked()
		if err != nil {
			return nil, err
		}
		s.version = current.Version()
		s.loaded = true
	}

	next := s.version + 1
	stamped := candidate.Clone()
	if stamped == nil {
		stamped = models.Document{}
	}
	stamped[models.VersionKey] = next

	raw, err := json.Marshal(stamped)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal document: %v", ErrDocumentNotPersisted, err)
	}
	if err := s.persist(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentNotPersisted, err)
	}

	// Return the persisted form, decoded from the same bytes that went to
	// disk, so the result is indistinguishable from a subsequent Read.
	var persisted models.Document
	if err := json.Unmarshal(raw, &persisted); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	s.version = next
	s.log.Debug().Int64("version", next).Msg("document persisted")

	return persisted, nil
}

// readLocked loads the document file. A missing file is the empty initial
// state, not an error.
func (s *fileDocumentStore) readLocked() (models.Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, nil
		}
		return nil, fmt.Errorf("read document file: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc == nil {
		doc = models.Document{}
	}

	return doc, nil
}

// persist writes raw to a temp file in the target directory, syncs it, and
// renames it over the data file. Rename is atomic on POSIX filesystems, so
// readers observe either the old or the new document, never a torn one.
func (s *fileDocumentStore) persist(raw []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".chore-data-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(raw); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
