package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/structviz/structviz/pkg/errors"
	"github.com/structviz/structviz/pkg/model"
)

// FileStore is a file-based workspace store for CLI usage.
// Workspaces are stored as JSON files in a config directory, one file per
// workspace named after the workspace itself.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based workspace store.
// If baseDir is empty, defaults to ~/.config/structviz/workspaces/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "structviz", "workspaces")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) workspacePath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) Get(ctx context.Context, name string) (model.Workspace, error) {
	if err := errors.ValidateWorkspaceName(name); err != nil {
		return model.Workspace{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ws, err := model.ReadWorkspaceFile(s.workspacePath(name))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return model.Workspace{}, errors.New(errors.ErrCodeWorkspaceNotFound, "workspace %q not found", name)
		}
		return model.Workspace{}, errors.Wrap(errors.ErrCodeStore, err, "read workspace %q", name)
	}
	return ws, nil
}

func (s *FileStore) Save(ctx context.Context, ws model.Workspace) error {
	if err := errors.ValidateWorkspaceName(ws.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := model.WriteWorkspaceFile(ws, s.workspacePath(ws.Name)); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write workspace %q", ws.Name)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateWorkspaceName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.workspacePath(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStore, err, "remove workspace %q", name)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read workspace dir")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for workspace files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
