package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("memory is the default", func(t *testing.T) {
		s, err := New(ctx, Options{})
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &MemoryStore{}, s)
	})

	t.Run("file backend", func(t *testing.T) {
		s, err := New(ctx, Options{Backend: "FILE", DataDir: t.TempDir()})
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &FileStore{}, s)
	})

	t.Run("postgres without a pool", func(t *testing.T) {
		_, err := New(ctx, Options{Backend: BackendPostgres})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgMissingDependency)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := New(ctx, Options{Backend: "sqlite"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgUnknownBackend)
	})
}
