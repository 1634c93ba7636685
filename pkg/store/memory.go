package store

import (
	"context"
	"sort"
	"sync"

	"github.com/structviz/structviz/pkg/errors"
	"github.com/structviz/structviz/pkg/model"
)

// MemoryStore is an in-memory workspace store for development and testing.
// Workspaces are held as serialized snapshots so callers never share mutable
// state with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, name string) (model.Workspace, error) {
	s.mu.RLock()
	raw, ok := s.data[name]
	s.mu.RUnlock()

	if !ok {
		return model.Workspace{}, errors.New(errors.ErrCodeWorkspaceNotFound, "workspace %q not found", name)
	}
	ws, err := model.UnmarshalWorkspace(raw)
	if err != nil {
		return model.Workspace{}, errors.Wrap(errors.ErrCodeStore, err, "decode workspace %q", name)
	}
	return ws, nil
}

func (s *MemoryStore) Save(ctx context.Context, ws model.Workspace) error {
	if err := errors.ValidateWorkspaceName(ws.Name); err != nil {
		return err
	}
	raw, err := model.MarshalWorkspace(ws)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode workspace %q", ws.Name)
	}

	s.mu.Lock()
	s.data[ws.Name] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	delete(s.data, name)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
