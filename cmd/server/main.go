package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streamhive/streamhive/internal/api"
	"github.com/streamhive/streamhive/internal/config"
	"github.com/streamhive/streamhive/internal/media/disk"
	"github.com/streamhive/streamhive/internal/repository/postgres"
	"github.com/streamhive/streamhive/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	repos := postgres.NewRepositories(db)

	store, err := disk.New(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		logger.Fatal("failed to initialize media store", zap.Error(err))
	}

	cache := newCacheClient(cfg, logger)

	services := service.NewServices(repos, cfg, store, logger)

	router := api.NewRouter(api.RouterDeps{
		Services:  services,
		Repos:     repos,
		Config:    cfg,
		Store:     store,
		Cache:     cache,
		Logger:    logger,
		StaticDir: store.Dir(),
	})

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  api.ReadTimeout,
		WriteTimeout: api.WriteTimeout,
		IdleTimeout:  api.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newCacheClient connects to redis when configured. Cache failures must never
// take the API down, so an unreachable redis just disables caching.
func newCacheClient(cfg *config.Config, logger *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, response cache disabled", zap.Error(err))
		return nil
	}
	logger.Info("response cache enabled", zap.String("addr", cfg.RedisAddr))
	return client
}
