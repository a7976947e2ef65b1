package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"immoinvest/server/config"
	"immoinvest/server/internal/api"
	"immoinvest/server/internal/cache"
	"immoinvest/server/internal/database"
	"immoinvest/server/internal/portfolio"
	"immoinvest/server/internal/processor"
	"immoinvest/server/internal/queue"
	"immoinvest/server/internal/scheduler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.Calculation.CityRentsFile != "" {
		if err := config.LoadCityRentsFile(cfg.Calculation.CityRentsFile); err != nil {
			logger.WithError(err).Fatal("Failed to load city rents")
		}
		logger.Infof("Loaded city rents from %s", cfg.Calculation.CityRentsFile)
	}

	store, closeStore := openStore(cfg, logger)
	defer closeStore()

	repo, closeCache := openCache(cfg, logger)
	defer closeCache()
	calc := cache.NewCachedCalculator(repo, time.Duration(cfg.Cache.TTL)*time.Second, logger)

	portfolioQueue := queue.NewPortfolioQueue(cfg.BatchProcessing.QueueSize, logger)
	service := portfolio.NewService(store, calc, portfolioQueue, cfg.BatchProcessing.MaxBatchSize, logger)

	batchProcessor := processor.NewBatchProcessor(store, service, portfolioQueue, cfg, logger)
	batchProcessor.Start()
	portfolioQueue.Start()

	backfill := scheduler.NewScheduler(store, portfolioQueue,
		time.Duration(cfg.BatchProcessing.BackfillInterval)*time.Second,
		cfg.BatchProcessing.MaxBatchSize, logger)
	backfill.Start()

	var limiter *api.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = api.NewRateLimiter(cfg.Server.RateLimitPerMinute, time.Minute)
		defer limiter.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	handler := api.NewHandler(calc, service, cfg.Calculation.ReferenceYear, logger)
	api.SetupRoutes(router, handler, cfg.Server.AllowedOrigins, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shut down")
	}

	backfill.Stop()
	if err := portfolioQueue.Close(); err != nil {
		logger.WithError(err).Error("Failed to close queue")
	}
	batchProcessor.Stop()
}

// openStore selects the portfolio backend. The returned func releases it.
func openStore(cfg *config.Config, logger *logrus.Logger) (portfolio.Store, func()) {
	switch cfg.Storage.Backend {
	case "file":
		store, err := portfolio.NewFileStore(cfg.Storage.PortfolioDir, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize portfolio directory")
		}
		logger.Infof("Using portfolio directory at: %s", cfg.Storage.PortfolioDir)
		return store, func() {}
	case "sqlite":
		logger.Infof("Using database at: %s", cfg.Storage.DatabasePath)
		db, err := database.NewDatabase(cfg.Storage.DatabasePath, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database")
		}

		logger.Info("Running database migrations...")
		if err := db.RunMigrations(); err != nil {
			logger.WithError(err).Fatal("Failed to run database migrations")
		}
		return db, func() {
			if err := db.Close(); err != nil {
				logger.WithError(err).Error("Failed to close database")
			}
		}
	default:
		logger.WithField("backend", cfg.Storage.Backend).Fatal("Unknown storage backend")
		return nil, nil
	}
}

// openCache connects to Redis when configured and falls back to memory when it is unreachable.
func openCache(cfg *config.Config, logger *logrus.Logger) (cache.Repository, func()) {
	if cfg.Cache.RedisAddr == "" {
		return openMemoryCache()
	}

	redisCache := cache.NewRedisCache(cfg.Cache.RedisAddr, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.WithError(err).WithField("addr", cfg.Cache.RedisAddr).Warn("Redis unavailable, using in-memory cache")
		_ = redisCache.Close()
		return openMemoryCache()
	}

	logger.WithField("addr", cfg.Cache.RedisAddr).Info("Using Redis cache")
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.WithError(err).Error("Failed to close redis")
		}
	}
}

func openMemoryCache() (cache.Repository, func()) {
	memoryCache := cache.NewMemoryCache()
	return memoryCache, func() { _ = memoryCache.Close() }
}
