package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhima/activity-logger/internal/activity"
	"github.com/dhima/activity-logger/internal/api/handlers"
	"github.com/dhima/activity-logger/internal/api/middleware"
	"github.com/dhima/activity-logger/internal/logging"
	"github.com/dhima/activity-logger/internal/storage"
	"github.com/dhima/activity-logger/pkg/config"
	platformEvents "github.com/dhima/activity-logger/platform/events"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// ActivityService is everything the routes need from the activity service.
type ActivityService interface {
	handlers.ActivityService
	handlers.StatsProvider
}

// RouterDeps are the collaborators NewRouter wires into routes.
type RouterDeps struct {
	Activity    ActivityService
	DB          handlers.Pinger
	Logger      logging.Logger
	CORSOrigins []string

	// IdentitySecret gates the forwarded contact headers; see middleware.Identity.
	IdentitySecret string
}

// Server orchestrates HTTP routing and dependencies for the API service.
type Server struct {
	config    config.App
	logger    logging.Logger
	router    *gin.Engine
	db        *sql.DB
	publisher *platformEvents.Publisher
}

// NewServer connects MySQL and Kafka and builds the router.
func NewServer(cfg config.App, logger logging.Logger) (*Server, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	db, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	mysqlClient := storage.NewMySQLClient(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mysqlClient.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	publisher := platformEvents.NewPublisher(cfg.Brokers(), cfg.KafkaTopic, logger.Zap())

	svc, err := activity.NewService(mysqlClient, publisher, logger.Zap())
	if err != nil {
		publisher.Close()
		db.Close()
		return nil, err
	}

	return &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		publisher: publisher,
		router: NewRouter(RouterDeps{
			Activity:       svc,
			DB:             mysqlClient,
			Logger:         logger,
			CORSOrigins:    cfg.CORSOrigins,
			IdentitySecret: cfg.IdentitySecret,
		}),
	}, nil
}

// NewRouter configures the Gin router with middleware and routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	zapLogger := deps.Logger.Zap()

	// Order matters: recovery first so it catches panics from the rest.
	router.Use(ginzap.RecoveryWithZap(zapLogger, true))
	router.Use(middleware.RequestID())
	router.Use(middleware.Identity(deps.IdentitySecret))
	router.Use(ginzap.Ginzap(zapLogger, time.RFC3339, true))
	if c, ok := corsConfig(deps.CORSOrigins); ok {
		router.Use(cors.New(c))
	}

	router.GET("/health", handlers.NewHealthHandler(deps.DB, deps.Logger).Health)
	router.GET("/metrics", handlers.NewMetricsHandler(deps.Activity, deps.Logger).Metrics)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	activityHandler := handlers.NewActivityHandler(deps.Activity, deps.Logger)
	activities := router.Group("/api/activity")
	{
		activities.POST("", activityHandler.RecordActivity)
		activities.GET("", activityHandler.ListActivities)
		activities.GET("/users", activityHandler.ListUserActivity)
		activities.GET("/:id", activityHandler.GetActivity)
	}

	return router
}

// corsConfig returns false when no cross-origin callers are allowed.
func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}

	// Contact headers are not listed; only the session layer sends them.
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c, true
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c, true
}

// Serve starts the HTTP server with graceful shutdown support.
func (s *Server) Serve() error {
	addr := ":" + s.config.APIPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting API server",
			zap.String("address", addr),
			zap.String("environment", s.config.Environment),
			zap.String("log_level", s.config.LogLevel),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-quit
	s.logger.Info("shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	if err := s.publisher.Close(); err != nil {
		s.logger.Error("failed to close kafka writer", zap.Error(err))
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close database connection", zap.Error(err))
	}

	s.logger.Info("server stopped")
	return nil
}

func connectDatabase(cfg config.App) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(60 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
