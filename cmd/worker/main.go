package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	enrichclient "claimdesk_backend/internal/enrichment/client"
	enrichservice "claimdesk_backend/internal/enrichment/service"
	invrepository "claimdesk_backend/internal/inventory/repository"
	"claimdesk_backend/internal/scheduler"
	"claimdesk_backend/platform/config"
	"claimdesk_backend/platform/db"
	"claimdesk_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting enrichment worker", "env", cfg.Env)

	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the worker")
	}
	if !cfg.IsEnrichmentEnabled() {
		panic("GEMINI_API_KEY is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	redisOpt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid redis url", "error", err)
		panic("invalid redis url: " + err.Error())
	}
	cache := redis.NewClient(redisOpt)
	defer cache.Close()

	gemini, err := enrichclient.New(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel())
	if err != nil {
		log.Error("failed to initialize gemini client", "error", err)
		panic("failed to initialize gemini client: " + err.Error())
	}

	enricher := enrichservice.New(
		invrepository.New(pool),
		gemini,
		cache,
		cfg.GetEnrichmentCacheTTL(),
		log,
	)

	worker, err := scheduler.NewWorker(cfg, enricher, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("enrichment worker listening")
	worker.Run(ctx)
	log.Info("enrichment worker stopped")
}
