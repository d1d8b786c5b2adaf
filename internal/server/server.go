package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/platify/platify-core/docs"
	"github.com/platify/platify-core/internal/favorites"
	"github.com/platify/platify-core/internal/generator"
	"github.com/platify/platify-core/internal/handler"
	"github.com/platify/platify-core/internal/history"
	"github.com/platify/platify-core/internal/ingredients"
	"github.com/platify/platify-core/internal/metrics"
	"github.com/platify/platify-core/internal/stats"
	"github.com/platify/platify-core/internal/user"
)

// Options tunes the HTTP layer
type Options struct {
	Port                int
	MaxRequestBodyBytes int64
	RateLimitPerSecond  float64
	RateLimitBurst      int
	TrustedProxies      []string
}

// Services are the collaborators the routes call into
type Services struct {
	Generator generator.Service
	History   history.Service
	Stats     stats.Service
	Favorites favorites.Service
	Catalog   *ingredients.Catalog
	// Tracker may be nil
	Tracker *user.ActiveTracker
	// Readiness maps a dependency name to its probe
	Readiness map[string]handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
	router     http.Handler
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	r := chi.NewRouter()

	if opts.MaxRequestBodyBytes <= 0 {
		opts.MaxRequestBodyBytes = DefaultMaxRequestBodyBytes
	}

	// Chi middleware executes in order defined (outermost to innermost)
	limiter := NewRateLimiter(opts.RateLimitPerSecond, opts.RateLimitBurst, DefaultLimiterCacheSize)

	r.Use(SecurityHeadersMiddleware())
	r.Use(metrics.Middleware)
	r.Use(UserContextMiddleware(svc.Tracker))
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(limiter, opts.TrustedProxies))
	r.Use(RequestSizeLimitMiddleware(opts.MaxRequestBodyBytes))

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Readiness))
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	catalog := svc.Catalog
	if catalog == nil {
		catalog = ingredients.Default()
	}

	r.Route("/api/v1", func(r chi.Router) {
		recipeHandler := handler.NewRecipeHandler(svc.Generator, svc.History, svc.Stats)
		r.Route("/recipes", func(r chi.Router) {
			r.Post("/generate", recipeHandler.HandleGenerate)
			r.Post("/complete", recipeHandler.HandleComplete)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", handler.HandleGetHistory(svc.History))
			r.Delete("/", handler.HandleClearHistory(svc.History))
			r.Get("/weeks", handler.HandleGetHistoryWeeks(svc.History))
			r.Delete("/recipes/{id}", handler.HandleDeleteHistoryRecipe(svc.History))
			r.Delete("/{index}", handler.HandleDeleteHistoryEntry(svc.History))
		})

		r.Route("/metrics", func(r chi.Router) {
			r.Get("/", handler.HandleGetMetrics(svc.Stats))
			r.Get("/history", handler.HandleGetMetricsHistory(svc.Stats))
			r.Post("/reset", handler.HandleResetMetrics(svc.Stats))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", handler.HandleListFavorites(svc.Favorites))
			r.Post("/", handler.HandleSaveFavorite(svc.Favorites))
			r.Delete("/{id}", handler.HandleDeleteFavorite(svc.Favorites))
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", handler.HandleGetIngredients(catalog))
			r.Get("/categories", handler.HandleGetCategories(catalog))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler returns the fully wired router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
