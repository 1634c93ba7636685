package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/structviz/structviz/pkg/cache"
	"github.com/structviz/structviz/pkg/errors"
	"github.com/structviz/structviz/pkg/model"
)

// redisKeyPrefix namespaces workspace keys so a shared Redis instance can
// serve other applications.
const redisKeyPrefix = "structviz:workspace:"

// RedisConfig holds connection settings for the Redis-backed store.
type RedisConfig struct {
	Addr     string        // host:port, e.g. "localhost:6379"
	Password string        // optional
	DB       int           // logical database number
	Timeout  time.Duration // dial timeout, defaults to 5s
}

// RedisStore is a Redis-backed workspace store for multi-instance server
// deployments. Workspaces are stored as JSON strings without expiry.
// Commands that fail on the wire are retried with backoff before the error
// surfaces to the caller.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// transient marks command failures as retryable for cache.RetryWithBackoff.
// redis.Nil is a lookup miss, not a failure: it passes through untouched so
// a missing workspace is never retried.
func transient(err error) error {
	if err == nil || err == redis.Nil {
		return err
	}
	return cache.Retryable(err)
}

func (s *RedisStore) Get(ctx context.Context, name string) (model.Workspace, error) {
	if err := errors.ValidateWorkspaceName(name); err != nil {
		return model.Workspace{}, err
	}

	var raw []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		b, err := s.client.Get(ctx, redisKeyPrefix+name).Bytes()
		if err != nil {
			return transient(err)
		}
		raw = b
		return nil
	})
	if err == redis.Nil {
		return model.Workspace{}, errors.New(errors.ErrCodeWorkspaceNotFound, "workspace %q not found", name)
	}
	if err != nil {
		return model.Workspace{}, errors.Wrap(errors.ErrCodeStore, err, "read workspace %q", name)
	}

	ws, err := model.UnmarshalWorkspace(raw)
	if err != nil {
		return model.Workspace{}, errors.Wrap(errors.ErrCodeStore, err, "decode workspace %q", name)
	}
	return ws, nil
}

func (s *RedisStore) Save(ctx context.Context, ws model.Workspace) error {
	if err := errors.ValidateWorkspaceName(ws.Name); err != nil {
		return err
	}

	raw, err := model.MarshalWorkspace(ws)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode workspace %q", ws.Name)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		return transient(s.client.Set(ctx, redisKeyPrefix+ws.Name, raw, 0).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write workspace %q", ws.Name)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateWorkspaceName(name); err != nil {
		return err
	}
	err := cache.RetryWithBackoff(ctx, func() error {
		return transient(s.client.Del(ctx, redisKeyPrefix+name).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "remove workspace %q", name)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := cache.RetryWithBackoff(ctx, func() error {
		names = names[:0]
		iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			names = append(names, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
		}
		return transient(iter.Err())
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "scan workspaces")
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
