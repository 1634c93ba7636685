// Package store provides workspace persistence.
//
// This package defines the storage interface for named workspaces, with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - redis: Redis-backed storage for multi-instance server deployments
//   - mongo: MongoDB-backed storage for durable server deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// CLI
//	st, err := store.NewFileStore("")  // Uses ~/.config/structviz/workspaces/
//
//	// Server
//	st, err := store.NewRedisStore(ctx, store.RedisConfig{Addr: "localhost:6379"})
//
// Manage workspaces:
//
//	if err := st.Save(ctx, ws); err != nil {
//	    return err
//	}
//	ws, err := st.Get(ctx, "demo")
//	if errors.Is(err, errors.ErrCodeWorkspaceNotFound) {
//	    // No workspace with that name
//	}
package store

import (
	"context"

	"github.com/structviz/structviz/pkg/model"
)

// Store is the interface for workspace storage backends.
// Workspaces are keyed by their Name field; saving a workspace with an
// existing name replaces the stored copy.
type Store interface {
	// Get retrieves a workspace by name.
	// Returns an error with code ErrCodeWorkspaceNotFound when absent.
	Get(ctx context.Context, name string) (model.Workspace, error)

	// Save stores a workspace under its name, replacing any existing copy.
	Save(ctx context.Context, ws model.Workspace) error

	// Delete removes a workspace. Deleting a missing workspace is not an
	// error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored workspaces, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
