package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/craftplan/craftplan/internal/config"
	"github.com/craftplan/craftplan/internal/database"
	"github.com/craftplan/craftplan/internal/planner"
	"github.com/craftplan/craftplan/internal/repository/postgres"
	"github.com/craftplan/craftplan/internal/server"
)

// @title Craftplan API
// @version 1.0
// @description Crafting plan resolution service: computes total base and intermediate material quantities for requested items.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	log := slog.Default()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		log.Error("Environment validation failed", "error", err)
		os.Exit(1)
	} else {
		for _, warning := range warnings {
			log.Warn(warning)
		}
	}

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(connString, database.DefaultMaxConnections, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	plannerService := planner.NewService(cfg.PlanCacheSize, cfg.PlanCacheTTL)
	booksRepo := postgres.NewBooksRepository(pool)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, plannerService, booksRepo)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
