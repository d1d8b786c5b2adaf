package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/platify/platify-core/internal/config"
	"github.com/platify/platify-core/internal/database"
	"github.com/platify/platify-core/internal/favorites"
	"github.com/platify/platify-core/internal/handler"
	"github.com/platify/platify-core/internal/kvstore"
)

// Storage holds the opened persistence backends
type Storage struct {
	Usage     kvstore.Store
	Favorites favorites.Store
	// Readiness maps dependency names to /readyz probes
	Readiness map[string]handler.HealthChecker
}

// OpenStorage opens the usage store selected by cfg.StorageBackend and the
// favorites store. The postgres backend runs pending migrations first.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	opts := kvstore.Options{
		Backend: cfg.StorageBackend,
		DataDir: cfg.DataDir,
		Redis: kvstore.RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			Namespace: cfg.RedisNamespace,
		},
	}

	readiness := make(map[string]handler.HealthChecker)

	if cfg.StorageBackend == config.BackendPostgres {
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenPool, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgDatabaseMigrated)

		opts.Pool = pool
		readiness[ReadinessPostgres] = poolCheck(pool)
	}

	usage, err := kvstore.New(ctx, opts)
	if err != nil {
		if opts.Pool != nil {
			opts.Pool.Close()
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}
	readiness[ReadinessStore] = handler.HealthCheckFunc(func(ctx context.Context) error {
		return kvstore.Ping(ctx, usage)
	})

	favs, err := openFavorites(ctx, cfg)
	if err != nil {
		_ = usage.Close()
		return nil, err
	}
	readiness[ReadinessFavorites] = handler.HealthCheckFunc(func(ctx context.Context) error {
		_, err := favs.List(ctx, FavoritesProbeUser)
		return err
	})

	return &Storage{Usage: usage, Favorites: favs, Readiness: readiness}, nil
}

func openFavorites(ctx context.Context, cfg *config.Config) (favorites.Store, error) {
	if cfg.MongoURI == "" {
		slog.Info(LogMsgFavoritesInMemory)
		return favorites.NewMemoryStore(), nil
	}

	store, err := favorites.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenFavorite, err)
	}
	slog.Info(LogMsgFavoritesMongo, "database", cfg.MongoDatabase)
	return store, nil
}

func poolCheck(pool database.Pool) handler.HealthChecker {
	return handler.HealthCheckFunc(pool.Ping)
}

// Close releases every backend, logging failures
func (s *Storage) Close(ctx context.Context) {
	if s.Usage != nil {
		if err := s.Usage.Close(); err != nil {
			slog.Error(ComponentNameStore+LogMsgComponentCloseFailed, "error", err)
		}
	}
	if s.Favorites != nil {
		if err := s.Favorites.Close(ctx); err != nil {
			slog.Error(ComponentNameFavorites+LogMsgComponentCloseFailed, "error", err)
		}
	}
}
