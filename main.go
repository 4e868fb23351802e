package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/server"
	"storefront/pkg/cache"
	"storefront/pkg/logx"
	"storefront/pkg/rabbitmq"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	connectTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load configuration")
	}
	logx.Init(logx.Options{Production: cfg.Env.IsProduction(), Level: cfg.LogLevel})

	// --- Database ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		logx.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to connect to database")
	}
	defer database.Close(db)
	logx.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := server.Deps{DB: db, Registry: registry}

	// --- Product cache (optional) ---
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logx.Warn().Err(err).Msg("product cache disabled")
		} else {
			defer redisClient.Close()
			deps.ProductCache = cache.NewProductCache(redisClient, cfg.ProductCacheTTL)
			logx.Info().Dur("ttl", cfg.ProductCacheTTL).Msg("product cache enabled")
		}
	}

	// --- Order events (optional) ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logx.Warn().Err(err).Msg("order events disabled")
		} else {
			defer mqClient.Close()
			deps.Publisher = mqClient
			if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
				logx.Error().Err(err).Msg("failed to start order event consumer")
			}
		}
	}

	app := server.New(deps)

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := cfg.ListenAddr()
		logx.Info().Str("addr", addr).Str("env", string(cfg.Env)).Msg("starting server")
		if err := app.Listen(addr); err != nil {
			logx.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logx.Info().Msg("shutting down server")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logx.Error().Err(err).Msg("error during server shutdown")
	}
	logx.Info().Msg("server gracefully stopped")
}
