package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/avoronov/go-chore-sync/models"
)

// MemoryStatePath selects a purely in-memory local store, used by tests and
// throwaway agents.
const MemoryStatePath = ":memory:"

// localFileStorage is the default LocalStorage implementation: an in-memory
// state mirrored to a single JSON file after every change. The shared
// Document and the per-device fields live in the same file but in separate
// sections, so device settings never get folded into the synced blob.
type localFileStorage struct {
	path     string
	inMemory bool

	mu    sync.RWMutex
	state localPersistedState
}

type localPersistedState struct {
	Document models.Document     `json:"document"`
	Device   models.DeviceFields `json:"device,omitempty"`
}

// NewLocalStorage opens (or initializes) the agent state file at path.
// An empty path or MemoryStatePath keeps all state in memory.
func NewLocalStorage(path string) (LocalStorage, error) {
	inMemory := path == "" || path == MemoryStatePath
	s := &localFileStorage{
		path:     path,
		inMemory: inMemory,
		state: localPersistedState{
			Document: models.Document{},
			Device:   models.DeviceFields{},
		},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *localFileStorage) load() error {
	if s.inMemory {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local state file: %w", err)
	}

	var state localPersistedState
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptLocalState, err)
	}
	if state.Document == nil {
		state.Document = models.Document{}
	}
	if state.Device == nil {
		state.Device = models.DeviceFields{}
	}
	s.state = state

	return nil
}

// persistLocked writes the state file via temp-file rename. Caller holds mu.
func (s *localFileStorage) persistLocked() error {
	if s.inMemory {
		return nil
	}

	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLocalStateNotPersisted, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrLocalStateNotPersisted, err)
	}

	tmp, err := os.CreateTemp(dir, ".chore-state-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLocalStateNotPersisted, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(raw); err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err == nil {
		err = os.Rename(tmpName, s.path)
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrLocalStateNotPersisted, err)
	}

	return nil
}

func (s *localFileStorage) LoadDocument(ctx context.Context) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Document.Clone(), nil
}

func (s *localFileStorage) SaveDocument(ctx context.Context, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Document = doc.Clone()
	return s.persistLocked()
}

func (s *localFileStorage) LoadDeviceFields(ctx context.Context) (models.DeviceFields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields := make(models.DeviceFields, len(s.state.Device))
	for k, v := range s.state.Device {
		fields[k] = v
	}
	return fields, nil
}

func (s *localFileStorage) SaveDeviceFields(ctx context.Context, fields models.DeviceFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(models.DeviceFields, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.state.Device = copied
	return s.persistLocked()
}
