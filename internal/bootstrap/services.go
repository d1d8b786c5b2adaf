package bootstrap

import (
	"time"

	"github.com/platify/platify-core/internal/concurrency"
	"github.com/platify/platify-core/internal/config"
	"github.com/platify/platify-core/internal/favorites"
	"github.com/platify/platify-core/internal/generator"
	"github.com/platify/platify-core/internal/history"
	"github.com/platify/platify-core/internal/ingredients"
	"github.com/platify/platify-core/internal/stats"
	"github.com/platify/platify-core/internal/storage"
	"github.com/platify/platify-core/internal/user"
)

// Services holds the domain services sharing one usage repository and lock manager
type Services struct {
	Repo      *storage.UsageRepository
	History   history.Service
	Stats     stats.Service
	Generator generator.Service
	Favorites favorites.Service
	Catalog   *ingredients.Catalog
	Tracker   *user.ActiveTracker
}

// NewServices wires the domain services on top of st
func NewServices(cfg *config.Config, st *Storage, loc *time.Location) *Services {
	repo := storage.NewUsageRepository(st.Usage)
	locks := concurrency.NewLockManager()

	chat := generator.NewClient(cfg.OpenAIEndpoint, cfg.OpenAIKey,
		generator.WithModel(cfg.OpenAIModel),
		generator.WithHTTPTimeout(cfg.OpenAITimeout),
	)

	return &Services{
		Repo: repo,
		History: history.NewService(repo, locks,
			history.WithCap(cfg.HistoryCap),
			history.WithLocation(loc),
		),
		Stats: stats.NewService(repo, locks,
			stats.WithLocation(loc),
			stats.WithArchiveCap(cfg.ArchiveCap),
			stats.WithHistoryCap(cfg.HistoryCap),
		),
		Generator: generator.NewService(chat),
		Favorites: favorites.NewService(st.Favorites, time.Now),
		Catalog:   ingredients.Default(),
		Tracker:   user.NewActiveTracker(cfg.ActiveUserCacheSize, cfg.ActiveUserTTL),
	}
}
