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

	"github.com/brightclass/grading-service/internal/cache"
	"github.com/brightclass/grading-service/internal/config"
	"github.com/brightclass/grading-service/internal/events"
	"github.com/brightclass/grading-service/internal/grader"
	"github.com/brightclass/grading-service/internal/handlers"
	"github.com/brightclass/grading-service/internal/models"
	"github.com/brightclass/grading-service/internal/repositories/postgres"
	"github.com/brightclass/grading-service/internal/services"
	"github.com/brightclass/grading-service/internal/utils"
	"github.com/brightclass/grading-service/internal/validator"
	"github.com/brightclass/grading-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var slogger *slog.Logger
	if cfg.IsDevelopment() {
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		slogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	logger := utils.NewSlogLogger(slogger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		slogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Lesson{},
		&models.Question{},
		&models.Assignment{},
		&models.Submission{},
		&models.Response{},
		&models.Mastery{},
	); err != nil {
		slogger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	var cacheService cache.CacheService = cache.NoopCache{}
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			slogger.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogger)
	}

	var publisher events.EventPublisher = events.NoopEventPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.GradingEventsTopic,
			Logger:       slogger,
		})
		if err != nil {
			slogger.Error("Failed to create event publisher", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	repo := postgres.NewRepository(db)
	graderClient := grader.NewHTTPClient(cfg.GraderURL, cfg.GraderTimeout, slogger)

	serviceManager := services.NewServiceManager(services.ManagerConfig{
		Repo:               repo,
		Grader:             graderClient,
		Publisher:          publisher,
		Cache:              cacheService,
		Logger:             slogger,
		Validator:          validator.New(),
		GradingConcurrency: cfg.GradingConcurrency,
		ResultsCacheTTL:    cfg.ResultsCacheTTL,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slogger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slogger.Error("Server shutdown failed", "error", err)
	}
}
