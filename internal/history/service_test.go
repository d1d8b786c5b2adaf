package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platify/platify-core/internal/concurrency"
	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/identity"
	"github.com/platify/platify-core/internal/kvstore"
	"github.com/platify/platify-core/internal/repository"
	"github.com/platify/platify-core/internal/storage"
)

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestService(t *testing.T, opts ...Option) (Service, *storage.UsageRepository, *fixedClock) {
	t.Helper()
	clock := &fixedClock{t: time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)}
	repo := storage.NewUsageRepository(kvstore.NewMemoryStore())
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewService(repo, concurrency.NewLockManager(), opts...), repo, clock
}

func recipes(n int, prefix string) []domain.RecipeRecord {
	out := make([]domain.RecipeRecord, n)
	for i := range out {
		out[i] = domain.RecipeRecord{
			Title:       fmt.Sprintf("%s %d", prefix, i),
			Steps:       []string{"step"},
			Ingredients: []string{"chicken", "rice"},
		}
	}
	return out
}

func TestAppend_SharedTimestampAndWeek(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	stored, err := svc.Append(ctx, "u1", recipes(3, "Bowl"))
	require.NoError(t, err)
	require.Len(t, stored, 3)

	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, log, 3)
	for _, r := range log {
		assert.True(t, clock.Now().Equal(r.GeneratedAt))
		assert.Equal(t, "2024-01", r.WeekID)
		assert.False(t, r.Completed)
	}
	assert.Equal(t, "Bowl 0", log[0].Title, "batch order is preserved")
}

func TestAppend_KeepsProvidedWeekID(t *testing.T) {
	svc, _, _ := newTestService(t)
	in := []domain.RecipeRecord{{Title: "Tagged", WeekID: "2023-40"}}

	stored, err := svc.Append(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.Equal(t, "2023-40", stored[0].WeekID)
	assert.Empty(t, in[0].GeneratedAt, "caller records are not mutated")
}

func TestAppend_NewestFirst(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	_, err := svc.Append(ctx, "u1", recipes(2, "old"))
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = svc.Append(ctx, "u1", recipes(1, "new"))
	require.NoError(t, err)

	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, log, 3)
	assert.Equal(t, "new 0", log[0].Title)
	assert.Equal(t, "old 0", log[1].Title)
}

func TestAppend_CapInvariant(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		_, err := svc.Append(ctx, "u1", recipes(3, fmt.Sprintf("batch-%d", i)))
		require.NoError(t, err)
		clock.Advance(time.Minute)

		log, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(log), DefaultCap)
	}

	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, log, DefaultCap)
	assert.Equal(t, "batch-39 0", log[0].Title, "newest entries survive")
	assert.Equal(t, "batch-6 0", log[DefaultCap-1].Title, "oldest excess entries are dropped")
}

func TestAppend_CustomCap(t *testing.T) {
	svc, _, _ := newTestService(t, WithCap(4))
	ctx := context.Background()

	_, err := svc.Append(ctx, "u1", recipes(3, "a"))
	require.NoError(t, err)
	_, err = svc.Append(ctx, "u1", recipes(3, "b"))
	require.NoError(t, err)

	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, log, 4)
}

func TestAppend_RequiresUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Append(context.Background(), "", recipes(1, "x"))
	assert.ErrorIs(t, err, domain.ErrUserIDRequired)
}

func TestRemove(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Append(ctx, "u1", recipes(5, "r"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "u1", 0))

	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, log, 4)
	assert.Equal(t, "r 1", log[0].Title, "former index 1 moves to index 0")
}

func TestRemove_OutOfRangeIgnored(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Append(ctx, "u1", recipes(2, "r"))
	require.NoError(t, err)

	for _, idx := range []int{-1, 2, 100} {
		assert.NoError(t, svc.Remove(ctx, "u1", idx))
	}

	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, log, 2)
}

func TestRemoveByID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	stored, err := svc.Append(ctx, "u1", recipes(3, "r"))
	require.NoError(t, err)

	found, err := svc.RemoveByID(ctx, "u1", identity.ResolveID(stored[1]))
	require.NoError(t, err)
	assert.True(t, found)

	found, err = svc.RemoveByID(ctx, "u1", "recipe-missing-0")
	require.NoError(t, err)
	assert.False(t, found)

	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, "r 0", log[0].Title)
	assert.Equal(t, "r 2", log[1].Title)
}

func TestClear(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Append(ctx, "u1", recipes(3, "r"))
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "u1"))
	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestList_BackfillsLegacyEntriesWithoutPersisting(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	legacy := []domain.RecipeRecord{
		{Title: "dated", GeneratedAt: time.Date(2023, 12, 27, 9, 0, 0, 0, time.UTC)},
		{Title: "undated"},
	}
	require.NoError(t, repo.Save(ctx, "u1", repository.NewUsageWrite().SetHistory(legacy)))

	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2023-52", log[0].WeekID)
	assert.Equal(t, "2024-01", log[1].WeekID)

	raw, err := repo.LoadHistory(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, raw[0].WeekID, "reads never write")
}

func TestWeeks(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	_, err := svc.Append(ctx, "u1", recipes(2, "first"))
	require.NoError(t, err)
	clock.Advance(7 * 24 * time.Hour)
	_, err = svc.Append(ctx, "u1", recipes(1, "second"))
	require.NoError(t, err)

	weeks, err := svc.Weeks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, "2024-02", weeks[0].WeekID)
	assert.Len(t, weeks[0].Recipes, 1)
	assert.Equal(t, "2024-01", weeks[1].WeekID)
	assert.Len(t, weeks[1].Recipes, 2)
}

func TestGroupByWeek_StoredIDsWin(t *testing.T) {
	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	log := []domain.RecipeRecord{
		{Title: "a", WeekID: "2023-10", GeneratedAt: now},
		{Title: "b"},
		{Title: "c", WeekID: "2023-10"},
	}

	groups := GroupByWeek(log, now)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"a", "c"}, []string{groups["2023-10"][0].Title, groups["2023-10"][1].Title})
	assert.Len(t, groups["2024-01"], 1)
}

func TestAppend_ConcurrentWritersKeepEveryEntry(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := svc.Append(ctx, "u1", recipes(1, fmt.Sprintf("w%d", i))); err != nil {
				t.Errorf("append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	log, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, log, 20)
}

type brokenRepo struct {
	repository.Usage
}

func (brokenRepo) LoadHistory(context.Context, string) ([]domain.RecipeRecord, error) {
	return nil, errors.New("io failure")
}

func TestAppend_StoreFailureSurfaces(t *testing.T) {
	svc := NewService(brokenRepo{}, concurrency.NewLockManager())
	_, err := svc.Append(context.Background(), "u1", recipes(1, "x"))
	assert.Error(t, err)
}
