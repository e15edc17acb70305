package scheduler

import (
	"context"
	"fmt"

	"claimdesk_backend/internal/enrichment/service"
	"claimdesk_backend/platform/config"
	"claimdesk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	enricher *service.Service
	log      *logger.Logger
}

func NewWorker(cfg config.RedisConfig, enricher *service.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			defaultQueue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		enricher: enricher,
		log:      log,
	}

	mux.HandleFunc(TaskItemEnrichment, w.handleItemEnrichment)

	return w, nil
}

func (w *Worker) handleItemEnrichment(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseItemEnrichmentPayload(task)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(payload.ItemID)
	if err != nil {
		return err
	}

	w.log.Info("processing enrichment job", "itemId", payload.ItemID)
	return w.enricher.EnrichItem(ctx, itemID)
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
