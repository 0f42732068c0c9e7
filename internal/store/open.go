package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	SQLitePath  string
	Redis       RedisOptions
	PostgresURL string
}

// Open creates the configured backend and wraps it in a Store.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Store, error) {
	var (
		backend Backend
		err     error
	)

	switch opts.Backend {
	case BackendMemory:
		backend = NewMemoryBackend()
	case BackendSQLite, "":
		backend, err = OpenSQLite(ctx, opts.SQLitePath)
	case BackendRedis:
		backend, err = OpenRedis(ctx, opts.Redis)
	case BackendPostgres:
		backend, err = OpenPostgres(ctx, opts.PostgresURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("store opened", zap.String("backend", opts.Backend))
	}
	return New(backend, logger), nil
}
