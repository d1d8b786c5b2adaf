package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platify/platify-core/internal/config"
	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/server"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StorageBackend:       config.BackendFile,
		DataDir:              t.TempDir(),
		HistoryCap:           5,
		ArchiveCap:           3,
		WorkerCount:          1,
		RolloverPollInterval: time.Hour,
		ActiveUserCacheSize:  10,
		ActiveUserTTL:        time.Hour,
		OpenAIEndpoint:       "http://127.0.0.1:0/unused",
		OpenAITimeout:        time.Second,
	}
}

func TestOpenStorage_FileBackend(t *testing.T) {
	ctx := context.Background()
	st, err := OpenStorage(ctx, testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close(ctx) })

	assert.Contains(t, st.Readiness, ReadinessStore)
	assert.Contains(t, st.Readiness, ReadinessFavorites)
	assert.NotContains(t, st.Readiness, ReadinessPostgres)
	for name, check := range st.Readiness {
		assert.NoError(t, check.CheckHealth(ctx), name)
	}
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageBackend = "carrier-pigeon"

	_, err := OpenStorage(context.Background(), cfg)
	assert.ErrorContains(t, err, ErrMsgFailedOpenStore)
}

func TestNewServices_HonoursCaps(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	st, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close(ctx) })

	svc := NewServices(cfg, st, time.UTC)

	batch := make([]domain.RecipeRecord, 8)
	for i := range batch {
		batch[i] = domain.RecipeRecord{Title: string(rune('A' + i))}
	}
	_, err = svc.History.Append(ctx, "user-1", batch)
	require.NoError(t, err)

	log, err := svc.History.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, log, cfg.HistoryCap)
	assert.NotEmpty(t, svc.Catalog.All())
}

func TestGracefulShutdown(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	st, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)

	svc := NewServices(cfg, st, time.UTC)
	workers := StartWorkers(cfg, svc, time.UTC)
	srv := server.NewServer(server.Options{Port: 0}, server.Services{
		Generator: svc.Generator,
		History:   svc.History,
		Stats:     svc.Stats,
		Favorites: svc.Favorites,
		Tracker:   svc.Tracker,
		Readiness: st.Readiness,
	})

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	assert.NotPanics(t, func() {
		GracefulShutdown(shutdownCtx, ShutdownComponents{Server: srv, Workers: workers, Storage: st})
	})

	_, err = svc.History.List(ctx, "user-1")
	assert.Error(t, err, "store is closed after shutdown")
	assert.False(t, workers.Pool.TryEnqueue(nil), "pool rejects work after shutdown")
}
