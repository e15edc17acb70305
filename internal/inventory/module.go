// Package inventory provides the master inventory bounded context module.
// The master ledger holds every item a household owns; claims take snapshots
// of it and never write back.
package inventory

import (
	"claimdesk_backend/internal/adapters/storage"
	"claimdesk_backend/internal/events"
	apphttp "claimdesk_backend/internal/http"
	"claimdesk_backend/internal/inventory/handler"
	"claimdesk_backend/internal/inventory/repository"
	"claimdesk_backend/internal/inventory/service"
	"claimdesk_backend/platform/logger"
	"claimdesk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the inventory bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the inventory module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, storageSvc storage.StorageService, evidenceBucket string, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, storageSvc, evidenceBucket, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "inventory"
}

// Service returns the service layer for cross-module adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetEnrichmentQueuer wires the optional background enrichment queue.
func (m *Module) SetEnrichmentQueuer(q service.EnrichmentQueuer) {
	m.service.SetEnrichmentQueuer(q)
}

// RegisterRoutes mounts inventory routes on the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	items := ctx.Protected.Group("/items")
	items.GET("", m.handler.List)
	items.POST("", m.handler.Create)
	items.GET("/:id", m.handler.GetByID)
	items.PUT("/:id", m.handler.Update)
	items.DELETE("/:id", m.handler.Delete)

	items.POST("/:id/evidence/upload-url", m.handler.UploadURL)
	items.POST("/:id/evidence", m.handler.RegisterEvidence)
	items.GET("/:id/evidence/:evidenceID/download-url", m.handler.DownloadURL)
	items.DELETE("/:id/evidence/:evidenceID", m.handler.DeleteEvidence)

	items.POST("/:id/enrich", m.handler.Enrich)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
