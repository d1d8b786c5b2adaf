package kvstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every backend must share
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		v, found, err := s.Get(context.Background(), "users/nobody/userMetrics")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Apply(ctx, NewBatch().Set("users/u1/recipeHistory", []byte(`[]`))))

		v, found, err := s.Get(ctx, "users/u1/recipeHistory")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[]`, string(v))
	})

	t.Run("batch writes every key", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		batch := NewBatch().
			Set("users/u1/userMetrics", []byte(`{"recipesGenerated":3}`)).
			Set("users/u1/completedRecipes", []byte(`["a"]`)).
			Set("users/u1/recipeHistory", []byte(`[{"title":"x"}]`))
		require.NoError(t, s.Apply(ctx, batch))

		for _, key := range []string{"users/u1/userMetrics", "users/u1/completedRecipes", "users/u1/recipeHistory"} {
			_, found, err := s.Get(ctx, key)
			require.NoError(t, err)
			assert.True(t, found, key)
		}
	})

	t.Run("later op on same key wins", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Apply(ctx, NewBatch().Set("k", []byte("1")).Set("k", []byte("2"))))
		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "2", string(v))

		require.NoError(t, s.Apply(ctx, NewBatch().Set("k", []byte("3")).Delete("k")))
		_, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("overwrite and delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Apply(ctx, NewBatch().Set("k", []byte("old"))))
		require.NoError(t, s.Apply(ctx, NewBatch().Set("k", []byte("new"))))

		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "new", string(v))

		require.NoError(t, s.Apply(ctx, NewBatch().Delete("k").Delete("never-existed")))
		_, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("keys by prefix", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		batch := NewBatch().
			Set("users/b/userMetrics", []byte(`{}`)).
			Set("users/a/userMetrics", []byte(`{}`)).
			Set("users/a/recipeHistory", []byte(`[]`)).
			Set("other/key", []byte(`1`))
		require.NoError(t, s.Apply(ctx, batch))

		keys, err := s.Keys(ctx, "users/")
		require.NoError(t, err)
		assert.Equal(t, []string{"users/a/recipeHistory", "users/a/userMetrics", "users/b/userMetrics"}, keys)

		keys, err = s.Keys(ctx, "users/a/")
		require.NoError(t, err)
		assert.Len(t, keys, 2)

		keys, err = s.Keys(ctx, "missing/")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("concurrent batches", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("users/u%d/userMetrics", i)
				if err := s.Apply(ctx, NewBatch().Set(key, []byte(`{}`))); err != nil {
					t.Errorf("apply %d: %v", i, err)
				}
			}(i)
		}
		wg.Wait()

		keys, err := s.Keys(ctx, "users/")
		require.NoError(t, err)
		assert.Len(t, keys, 10)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		s := NewMemoryStore()
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	value := []byte("abc")
	require.NoError(t, s.Apply(ctx, NewBatch().Set("k", value)))
	value[0] = 'x'

	got, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	_, _, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Apply(context.Background(), NewBatch().Set("k", nil)), ErrClosed)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Apply(ctx, NewBatch().Set("k", []byte("v"))), context.Canceled)
	_, found, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBatch_OpsSortedByKey(t *testing.T) {
	b := NewBatch().Set("c", nil).Delete("a").Set("b", []byte("1"))
	ops := b.Ops()
	require.Len(t, ops, 3)
	assert.Equal(t, "a", ops[0].Key)
	assert.True(t, ops[0].Delete)
	assert.Equal(t, "b", ops[1].Key)
	assert.Equal(t, "c", ops[2].Key)
	assert.Equal(t, 3, b.Len())

	var nilBatch *Batch
	assert.Equal(t, 0, nilBatch.Len())
	assert.Nil(t, nilBatch.Ops())
}

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "users/u1/recipeHistory", JoinKey("users", "u1", "recipeHistory"))
}

func TestPing(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, Ping(context.Background(), s))

	require.NoError(t, s.Close())
	assert.ErrorIs(t, Ping(context.Background(), s), ErrClosed)
}
