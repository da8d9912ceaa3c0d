package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/farefinder/service-fares/internal/application"
	"github.com/farefinder/service-fares/internal/auth"
	"github.com/farefinder/service-fares/internal/config"
	"github.com/farefinder/service-fares/internal/database"
	"github.com/farefinder/service-fares/internal/domain/fare"
	fareEvents "github.com/farefinder/service-fares/internal/events"
	"github.com/farefinder/service-fares/internal/geocode"
	"github.com/farefinder/service-fares/internal/handler"
	"github.com/farefinder/service-fares/internal/health"
	"github.com/farefinder/service-fares/internal/kafka"
	"github.com/farefinder/service-fares/internal/logger"
	"github.com/farefinder/service-fares/internal/middleware"
	"github.com/farefinder/service-fares/internal/provider"
	"github.com/farefinder/service-fares/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-fares")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-fares",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     strconv.Itoa(cfg.DBConfig.Port),
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := db.AutoMigrate(
		&repository.UserModel{},
		&repository.SavedAddressModel{},
		&repository.SearchRecordModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database migration completed")

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Hour)

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	addressRepo := repository.NewGormAddressRepository(db)

	// Initialize upstream clients
	validator := geocode.NewValidator(cfg.GoogleMapsKey, log)
	providers := []fare.QuoteProvider{
		provider.NewUberClient(cfg.UberBaseURL),
		provider.NewLyftClient(cfg.LyftBaseURL),
	}

	// Initialize Kafka producer and the history consumer when brokers are
	// configured; fare searches work without them.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var kafkaProducer *kafka.Producer
	if cfg.KafkaConfig.Enabled() {
		kafkaProducer = kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()

		groupID := cfg.KafkaConfig.GroupPrefix + "fares-service"
		historyConsumer := fareEvents.NewSearchHistoryConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			addressRepo,
			log,
		)
		defer func() { _ = historyConsumer.Close() }()

		go func() {
			log.Info("starting search history consumer")
			if err := historyConsumer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("search history consumer error", zap.Error(err))
			}
		}()
	} else {
		log.Info("kafka brokers not configured, search history recording disabled")
	}

	// Initialize application services
	fareService := application.NewFareService(
		validator,
		providers,
		kafkaProducer,
		log,
		cfg.Search.MaxWorkers,
		cfg.Search.UpstreamTimeout,
	)
	accountService := application.NewAccountService(userRepo, jwtManager, log)
	profileService := application.NewProfileService(userRepo, addressRepo, log)

	// Initialize HTTP handlers
	fareHandler := handler.NewFareHandler(fareService, cfg.Search.DefaultRadiusFeet, cfg.Search.DefaultLimit)
	authHandler := handler.NewAuthHandler(accountService, jwtManager)
	profileHandler := handler.NewProfileHandler(profileService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-fares")
	healthHandler.RegisterRoutes(router)

	// Register routes
	fareHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	authHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	profileHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-fares...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-fares stopped")
}
