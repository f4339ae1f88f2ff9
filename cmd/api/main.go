package main

import (
	"log"

	_ "github.com/dhima/activity-logger/docs" // Import generated docs
	"github.com/dhima/activity-logger/internal/api"
	"github.com/dhima/activity-logger/internal/logging"
	"github.com/dhima/activity-logger/pkg/config"
	"go.uber.org/zap"
)

// @title UI Activity Logger API
// @version 1.0
// @description Sink for declarative UI activity reported by pages carrying the activity tracker.
// @description
// @description ## Flow
// @description - Pages mark interactive elements with `data-log` and optional `data-feature`, `data-action`, `data-notes`
// @description - The tracker posts one record per click to `POST /api/activity`
// @description - Records are stored in MySQL with the caller's identity and published to Kafka

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

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

	srv, err := api.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to start api", zap.Error(err))
	}
	if err := srv.Serve(); err != nil {
		logger.Fatal("api server stopped", zap.Error(err))
	}
}
