package favorites

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/platify/platify-core/internal/domain"
)

// Favorite is a recipe a user saved, keyed by its resolved recipe id
type Favorite struct {
	UserID  string              `json:"-"`
	Recipe  domain.RecipeRecord `json:"recipe"`
	SavedAt time.Time           `json:"savedAt"`
}

// ID returns the recipe id the favorite is keyed by
func (f Favorite) ID() string {
	return f.Recipe.ID
}

// Store persists favorites
type Store interface {
	// Upsert replaces any favorite with the same user and recipe id
	Upsert(ctx context.Context, fav Favorite) error
	// List returns the user's favorites, most recently saved first
	List(ctx context.Context, userID string) ([]Favorite, error)
	// Delete reports whether a favorite was removed
	Delete(ctx context.Context, userID, recipeID string) (bool, error)
	Close(ctx context.Context) error
}

// MemoryStore keeps favorites in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]Favorite
}

// NewMemoryStore returns an empty in-memory favorites store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]map[string]Favorite)}
}

// Upsert implements Store
func (s *MemoryStore) Upsert(_ context.Context, fav Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.items[fav.UserID]
	if !ok {
		byID = make(map[string]Favorite)
		s.items[fav.UserID] = byID
	}
	fav.Recipe = fav.Recipe.Clone()
	byID[fav.ID()] = fav
	return nil
}

// List implements Store
func (s *MemoryStore) List(_ context.Context, userID string) ([]Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Favorite, 0, len(s.items[userID]))
	for _, fav := range s.items[userID] {
		fav.Recipe = fav.Recipe.Clone()
		out = append(out, fav)
	}
	sortNewestFirst(out)
	return out, nil
}

// Delete implements Store
func (s *MemoryStore) Delete(_ context.Context, userID, recipeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[userID][recipeID]; !ok {
		return false, nil
	}
	delete(s.items[userID], recipeID)
	return true, nil
}

// Close implements Store
func (s *MemoryStore) Close(context.Context) error {
	return nil
}

func sortNewestFirst(favs []Favorite) {
	sort.SliceStable(favs, func(i, j int) bool {
		if favs[i].SavedAt.Equal(favs[j].SavedAt) {
			return favs[i].ID() < favs[j].ID()
		}
		return favs[i].SavedAt.After(favs[j].SavedAt)
	})
}
