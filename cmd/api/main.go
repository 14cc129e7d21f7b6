// Package main is the entry point for the marketplace-search-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"marketplace-search-service/internal/app/service"
	"marketplace-search-service/internal/config"
	"marketplace-search-service/internal/domain"
	"marketplace-search-service/internal/infra/feed"
	"marketplace-search-service/internal/infra/feed/partner"
	"marketplace-search-service/internal/infra/postgres"
	"marketplace-search-service/internal/infra/postgres/migrations"
	rediscache "marketplace-search-service/internal/infra/redis"
	"marketplace-search-service/internal/job"
	"marketplace-search-service/internal/logger"
	"marketplace-search-service/internal/transport/httpserver"
	"marketplace-search-service/internal/validator"
	"marketplace-search-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting marketplace-search-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
			LogQueries:   cfg.Database.LogQueries,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repositories
	repo := postgres.NewRepository(db)
	trendRepo := postgres.NewTrendRepository(db)

	// Create partner feed clients
	partnerFeed := partner.New(
		cfg.Feed.Partner.Name,
		feed.ClientConfig{
			BaseURL: cfg.Feed.Partner.BaseURL,
			Timeout: cfg.Feed.Partner.Timeout,
			Retry: feed.RetryConfig{
				MaxAttempts: cfg.Feed.Partner.Retry.MaxAttempts,
				WaitTime:    cfg.Feed.Partner.Retry.WaitTime,
				MaxWaitTime: cfg.Feed.Partner.Retry.MaxWaitTime,
			},
			CB: feed.CBConfig{
				MaxRequests:  cfg.Feed.Partner.CB.MaxRequests,
				Interval:     cfg.Feed.Partner.CB.Interval,
				Timeout:      cfg.Feed.Partner.CB.Timeout,
				FailureRatio: cfg.Feed.Partner.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	feeds := []domain.ListingFeed{partnerFeed}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create result cache (optional, based on config)
	var resultCache *service.ResultCache
	if cfg.Cache.Enabled {
		redisCache := rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		resultCache = service.NewResultCache(redisCache, cfg.Cache.TTL, log.Logger)
		log.Info("result cache enabled",
			zap.Duration("ttl", cfg.Cache.TTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("result cache disabled")
	}

	// Create services
	searchSvc := service.NewSearchService(repo, repo, resultCache, log.Logger)
	suggestSvc := service.NewSuggestService(repo, log.Logger)
	trendSvc := service.NewTrendService(trendRepo, repo, log.Logger)
	importSvc := service.NewImportService(repo, feeds, log.Logger)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		searchSvc,
		suggestSvc,
		trendSvc,
		importSvc,
		db,
		v,
		log.Logger,
	)

	// Start background jobs with distributed locking
	importJob := job.NewScheduler(
		"feed-import",
		func(ctx context.Context) error {
			for _, result := range importSvc.ImportAll(ctx) {
				if result.Error != nil {
					return result.Error
				}
			}
			return nil
		},
		job.Config{
			Interval:  cfg.Import.Interval,
			Timeout:   cfg.Import.Timeout,
			OnStartup: cfg.Import.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	importJob.Start(cfg.Import.OnStartup)

	maintenanceJob := job.NewScheduler(
		"trend-maintenance",
		func(ctx context.Context) error {
			trendSvc.RunMaintenance(ctx)
			return nil
		},
		job.Config{
			Interval:  cfg.Maintenance.Interval,
			Timeout:   cfg.Maintenance.Timeout,
			OnStartup: cfg.Maintenance.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	maintenanceJob.Start(cfg.Maintenance.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Stop background jobs
		importJob.Stop()
		maintenanceJob.Stop()

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
