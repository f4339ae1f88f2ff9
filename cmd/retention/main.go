package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhima/activity-logger/internal/logging"
	"github.com/dhima/activity-logger/internal/retention"
	"github.com/dhima/activity-logger/internal/storage"
	"github.com/dhima/activity-logger/pkg/config"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg := config.FromEnv()

	logger, err := logging.New(logging.Options{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database connection", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(60 * time.Minute)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := storage.NewMySQLClient(db)
	if err := client.Ping(ctx); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	engine, err := retention.NewEngine(client, retention.Policy{
		ArchiveAfter: cfg.ArchiveAfter,
		PurgeAfter:   cfg.PurgeAfter,
	}, cfg.RetentionCron, logger.Zap())
	if err != nil {
		logger.Fatal("failed to build retention engine", zap.Error(err))
	}

	if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("retention engine stopped", zap.Error(err))
	}
}
