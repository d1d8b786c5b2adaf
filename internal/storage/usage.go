// Package storage implements repository interfaces on top of a kvstore.Store
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/kvstore"
	"github.com/platify/platify-core/internal/logger"
	"github.com/platify/platify-core/internal/repository"
)

// UsageRepository stores usage state as JSON values under users/<id>/<name>
type UsageRepository struct {
	store kvstore.Store
}

// NewUsageRepository creates a repository over store
func NewUsageRepository(store kvstore.Store) *UsageRepository {
	return &UsageRepository{store: store}
}

var _ repository.Usage = (*UsageRepository)(nil)

// UserKey returns the store key of one of a user's values
func UserKey(userID, name string) string {
	return kvstore.JoinKey(UsersPrefix, url.PathEscape(userID), name)
}

// load decodes the value at key into dst. It reports false when the key is
// missing or holds data that cannot be decoded.
func (r *UsageRepository) load(ctx context.Context, userID, name string, dst any) (bool, error) {
	raw, found, err := r.store.Get(ctx, UserKey(userID, name))
	if err != nil {
		return false, fmt.Errorf(ErrMsgLoadFailed, name, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCorruptValue, "key", name, "user_id", userID, "error", err)
		return false, nil
	}
	return true, nil
}

// LoadHistory implements repository.Usage
func (r *UsageRepository) LoadHistory(ctx context.Context, userID string) ([]domain.RecipeRecord, error) {
	var history []domain.RecipeRecord
	ok, err := r.load(ctx, userID, KeyRecipeHistory, &history)
	if err != nil {
		return nil, err
	}
	if !ok || history == nil {
		return []domain.RecipeRecord{}, nil
	}
	return history, nil
}

// LoadSnapshot implements repository.Usage
func (r *UsageRepository) LoadSnapshot(ctx context.Context, userID string) (*domain.MetricsSnapshot, error) {
	var snap *domain.MetricsSnapshot
	ok, err := r.load(ctx, userID, KeyUserMetrics, &snap)
	if err != nil || !ok {
		return nil, err
	}
	return snap, nil
}

// LoadArchive implements repository.Usage
func (r *UsageRepository) LoadArchive(ctx context.Context, userID string) ([]domain.MetricsSnapshot, error) {
	var archive []domain.MetricsSnapshot
	ok, err := r.load(ctx, userID, KeyHistoricalMetrics, &archive)
	if err != nil {
		return nil, err
	}
	if !ok || archive == nil {
		return []domain.MetricsSnapshot{}, nil
	}
	return archive, nil
}

// LoadCompleted implements repository.Usage
func (r *UsageRepository) LoadCompleted(ctx context.Context, userID string) (domain.CompletedSet, error) {
	var completed domain.CompletedSet
	ok, err := r.load(ctx, userID, KeyCompletedRecipes, &completed)
	if err != nil {
		return nil, err
	}
	if !ok || completed == nil {
		return domain.NewCompletedSet(), nil
	}
	return completed, nil
}

// Save implements repository.Usage
func (r *UsageRepository) Save(ctx context.Context, userID string, w *repository.UsageWrite) error {
	if w.IsEmpty() {
		return nil
	}

	batch := kvstore.NewBatch()
	put := func(name string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf(ErrMsgEncodeFailed, name, err)
		}
		batch.Set(UserKey(userID, name), data)
		return nil
	}

	var errs []error
	if h, ok := w.History(); ok {
		errs = append(errs, put(KeyRecipeHistory, h))
	}
	if s := w.Snapshot(); s != nil {
		errs = append(errs, put(KeyUserMetrics, s))
	}
	if a, ok := w.Archive(); ok {
		errs = append(errs, put(KeyHistoricalMetrics, a))
	}
	if c := w.Completed(); c != nil {
		errs = append(errs, put(KeyCompletedRecipes, c))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if err := r.store.Apply(ctx, batch); err != nil {
		return fmt.Errorf(ErrMsgSaveFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgUsageSaved, "user_id", userID, "keys", batch.Len())
	return nil
}

// ListUsers implements repository.Usage
func (r *UsageRepository) ListUsers(ctx context.Context) ([]string, error) {
	prefix := UsersPrefix + kvstore.KeySeparator
	keys, err := r.store.Keys(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListFailed, err)
	}

	users := make([]string, 0)
	seen := make(map[string]struct{})
	for _, key := range keys {
		escaped, _, ok := strings.Cut(strings.TrimPrefix(key, prefix), kvstore.KeySeparator)
		if !ok {
			continue
		}
		userID, err := url.PathUnescape(escaped)
		if err != nil {
			continue
		}
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		users = append(users, userID)
	}
	return users, nil
}
