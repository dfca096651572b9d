package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/items-api/internal/config"
	"github.com/msomdec/items-api/internal/handler"
	"github.com/msomdec/items-api/internal/repository"
	"github.com/msomdec/items-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("close database", "error", err)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	slog.Info("database migrations applied")

	authService := service.NewAuthService(db.Users(), service.NewBcryptHasher(cfg.BcryptCost))
	itemService := service.NewItemService(db.Items())

	var authLimiter *service.TokenBucket
	if cfg.AuthRateLimit > 0 {
		authLimiter = service.NewTokenBucket(cfg.AuthRateLimit)
		defer authLimiter.Stop()
	}

	router := handler.NewRouter(
		authService,
		itemService,
		db,
		handler.NewOriginPolicy(cfg.DeploymentHost),
		authLimiter,
		cfg.TrustProxy,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "deployment_host", cfg.DeploymentHost)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
