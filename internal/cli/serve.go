package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/structviz/structviz/internal/api"
	"github.com/structviz/structviz/pkg/cache"
	"github.com/structviz/structviz/pkg/pipeline"
	"github.com/structviz/structviz/pkg/store"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		storeKind string
		storeDir  string
		redisAddr string
		mongoURI  string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the structviz HTTP API server",
		Long: `Run the structviz HTTP API server.

The server exposes workspace CRUD plus stateless analyze, layout, and
export endpoints under /api. Workspaces are persisted in the selected
store backend:

  memory   in-process, lost on shutdown (default)
  file     JSON files under --store-dir (default ~/.config/structviz/workspaces)
  redis    Redis at --redis-addr
  mongo    MongoDB at --mongo-uri`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), serveConfig{
				addr:      addr,
				storeKind: storeKind,
				storeDir:  storeDir,
				redisAddr: redisAddr,
				mongoURI:  mongoURI,
				noCache:   noCache,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&storeKind, "store", "memory", "workspace store backend: memory, file, redis, mongo")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "directory for the file store")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "address for the redis store")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "connection URI for the mongo store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// serveConfig holds the resolved serve flags.
type serveConfig struct {
	addr      string
	storeKind string
	storeDir  string
	redisAddr string
	mongoURI  string
	noCache   bool
}

// runServe builds the store and runner, then serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg serveConfig) error {
	logger := loggerFromContext(ctx)

	st, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	cch, err := newCache(cfg.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(cch, serveKeyer(cfg.storeKind), c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           api.NewServer(st, runner, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", cfg.addr, "store", cfg.storeKind)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// serveKeyer namespaces the server's cache entries per store backend, keeping
// them apart from plain CLI runs that share the same cache directory.
func serveKeyer(storeKind string) cache.Keyer {
	return cache.NewScopedKeyer(nil, "serve:"+storeKind+":")
}

// newStore builds the workspace store backend selected by --store.
func newStore(ctx context.Context, cfg serveConfig) (store.Store, error) {
	switch cfg.storeKind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.storeDir)
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{Addr: cfg.redisAddr})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.mongoURI})
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory', 'file', 'redis', or 'mongo')", cfg.storeKind)
	}
}
