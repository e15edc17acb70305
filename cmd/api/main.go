package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claimdesk_backend/internal/adapters/storage"
	"claimdesk_backend/internal/auth"
	"claimdesk_backend/internal/claims"
	"claimdesk_backend/internal/events"
	apphttp "claimdesk_backend/internal/http"
	"claimdesk_backend/internal/http/router"
	"claimdesk_backend/internal/inventory"
	"claimdesk_backend/internal/notification"
	"claimdesk_backend/internal/policies"
	"claimdesk_backend/internal/scheduler"
	"claimdesk_backend/internal/tasks"
	"claimdesk_backend/migrations"
	"claimdesk_backend/platform/config"
	"claimdesk_backend/platform/db"
	"claimdesk_backend/platform/logger"
	"claimdesk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for evidence uploads (MinIO)
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	if err := withRetry(ctx, log, "ensure evidence bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketEvidence())
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketEvidence())
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "evidenceBucket", cfg.GetMinioBucketEvidence())

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(cfg, val)
	inventoryModule := inventory.NewModule(pool, eventBus, storageSvc, cfg.GetMinioBucketEvidence(), val, log)
	policiesModule := policies.NewModule(pool, val, log)
	claimsModule := claims.NewModule(pool, inventoryModule.Service(), policiesModule.Service(), eventBus, val, log)
	tasksModule := tasks.NewModule(pool, eventBus, val, log)

	// Background enrichment queue (optional, needs Redis + Gemini)
	if cfg.GetRedisURL() != "" && cfg.IsEnrichmentEnabled() {
		enrichmentQueue, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize enrichment queue", "error", err)
		} else {
			defer enrichmentQueue.Close()
			inventoryModule.SetEnrichmentQueuer(enrichmentQueue)
			log.Info("enrichment queue initialized")
		}
	} else {
		log.Warn("enrichment disabled; REDIS_URL or GEMINI_API_KEY not configured")
	}

	// Notification service subscribes to claim events (not HTTP-facing)
	if cfg.IsEmailEnabled() {
		sender := notification.NewSMTPSender(
			cfg.GetSMTPHost(), cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(), cfg.GetEmailFromName(),
		)
		notification.NewService(sender, cfg.GetNotifyAddress(), log).RegisterHandlers(eventBus)
		log.Info("claim notifications enabled", "to", cfg.GetNotifyAddress())
	} else {
		log.Warn("claim notifications disabled; SMTP not configured")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			inventoryModule,
			policiesModule,
			claimsModule,
			tasksModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
