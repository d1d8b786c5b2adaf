// @title Platify Core API
// @version 1.0
// @description Recipe history, weekly usage metrics and favorites for the Platify app.
// @BasePath /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/platify/platify-core/internal/bootstrap"
	"github.com/platify/platify-core/internal/config"
	"github.com/platify/platify-core/internal/server"
)

func main() {
	initEarlyLogger()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn(w)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}

	svc := bootstrap.NewServices(cfg, st, loc)
	workers := bootstrap.StartWorkers(cfg, svc, loc)

	srv := server.NewServer(server.Options{
		Port:                cfg.Port,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
		TrustedProxies:      cfg.TrustedProxies,
	}, server.Services{
		Generator: svc.Generator,
		History:   svc.History,
		Stats:     svc.Stats,
		Favorites: svc.Favorites,
		Catalog:   svc.Catalog,
		Tracker:   svc.Tracker,
		Readiness: st.Readiness,
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Workers: workers,
		Storage: st,
	})

	return err
}
