// Package favorites stores recipes a user wants to keep beyond the capped history.
package favorites

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/identity"
	"github.com/platify/platify-core/internal/logger"
)

// Service defines favorites operations
type Service interface {
	// Save upserts record under its resolved id and returns the stored favorite
	Save(ctx context.Context, userID string, record domain.RecipeRecord) (*Favorite, error)
	List(ctx context.Context, userID string) ([]Favorite, error)
	// Delete returns domain.ErrFavoriteNotFound when nothing was removed
	Delete(ctx context.Context, userID, recipeID string) error
}

type service struct {
	store Store
	now   func() time.Time
}

// NewService creates a favorites service. now may be nil.
func NewService(store Store, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{store: store, now: now}
}

func (s *service) Save(ctx context.Context, userID string, record domain.RecipeRecord) (*Favorite, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUserIDRequired
	}
	rec := record.Clone()
	rec.ID = identity.ResolveID(rec)

	fav := Favorite{UserID: userID, Recipe: rec, SavedAt: s.now().UTC()}
	if err := s.store.Upsert(ctx, fav); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	logger.FromContext(ctx).Info(LogMsgFavoriteSaved, "recipe_id", rec.ID)
	return &fav, nil
}

func (s *service) List(ctx context.Context, userID string) ([]Favorite, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUserIDRequired
	}
	favs, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return favs, nil
}

func (s *service) Delete(ctx context.Context, userID, recipeID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrUserIDRequired
	}
	removed, err := s.store.Delete(ctx, userID, recipeID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !removed {
		return fmt.Errorf("%w: %s", domain.ErrFavoriteNotFound, recipeID)
	}
	logger.FromContext(ctx).Info(LogMsgFavoriteDeleted, "recipe_id", recipeID)
	return nil
}
