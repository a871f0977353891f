package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/swetter/internal/bootstrap"
	"anoa.com/swetter/internal/config"
	"anoa.com/swetter/internal/server"
	"anoa.com/swetter/pkg/database"
	"anoa.com/swetter/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if _, err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}

	if err := run(cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := bootstrap.Migrate(db); err != nil {
		return err
	}

	if cfg.IsDevelopment() {
		if err := bootstrap.SeedAdmin(db, cfg.AdminPassword); err != nil {
			return err
		}
	}

	redisClient, err := server.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}

	llm, err := server.NewLLMProvider(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg, db, redisClient, llm)
	srv.Start()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signals:
		slog.Info("received signal, shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
