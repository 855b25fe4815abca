package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prohub/platform/internal/app"
	"github.com/prohub/platform/internal/auth"
	"github.com/prohub/platform/internal/infra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	// Connect to Postgres
	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	// Apply migrations
	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Parse JWT expiry durations
	clientExpiry, err := time.ParseDuration(cfg.JWTClientExpiry)
	if err != nil {
		return fmt.Errorf("parse client JWT expiry: %w", err)
	}
	professionalExpiry, err := time.ParseDuration(cfg.JWTProfessionalExpiry)
	if err != nil {
		return fmt.Errorf("parse professional JWT expiry: %w", err)
	}
	adminExpiry, err := time.ParseDuration(cfg.JWTAdminExpiry)
	if err != nil {
		return fmt.Errorf("parse admin JWT expiry: %w", err)
	}

	withdrawalWindow, err := time.ParseDuration(cfg.WithdrawalRateWindow)
	if err != nil {
		return fmt.Errorf("parse withdrawal rate window: %w", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, clientExpiry, professionalExpiry, adminExpiry)

	router := app.NewRouter(app.RouterDeps{
		Pool:                 pool,
		JWTMgr:               jwtMgr,
		Logger:               logger,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		WithdrawalRateLimit:  cfg.WithdrawalRateLimit,
		WithdrawalRateWindow: withdrawalWindow,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	// Shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
