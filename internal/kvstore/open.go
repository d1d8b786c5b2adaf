package kvstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Options selects and configures a backend
type Options struct {
	Backend string
	DataDir string
	Redis   RedisOptions
	// Pool is required by the postgres backend and owned by the store afterwards
	Pool *pgxpool.Pool
}

// New opens the backend named by opts.Backend
func New(ctx context.Context, opts Options) (Store, error) {
	backend := strings.ToLower(opts.Backend)

	var (
		store Store
		err   error
	)
	switch backend {
	case BackendMemory, "":
		backend = BackendMemory
		store = NewMemoryStore()
	case BackendFile:
		store, err = NewFileStore(opts.DataDir)
	case BackendRedis:
		store, err = NewRedisStore(ctx, opts.Redis)
	case BackendPostgres:
		if opts.Pool == nil {
			return nil, fmt.Errorf("%s: %s requires a connection pool", ErrMsgMissingDependency, BackendPostgres)
		}
		store = NewPostgresStore(opts.Pool)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	slog.Default().Info(LogMsgStoreOpened, "backend", backend)
	return store, nil
}
