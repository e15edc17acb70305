// Package claims provides the claim assembly bounded context module.
// A claim is a point-in-time snapshot of the master inventory filtered
// through the active policy; editing a claim never touches the ledger.
package claims

import (
	"claimdesk_backend/internal/claims/domain"
	"claimdesk_backend/internal/claims/handler"
	"claimdesk_backend/internal/claims/repository"
	"claimdesk_backend/internal/claims/service"
	"claimdesk_backend/internal/events"
	apphttp "claimdesk_backend/internal/http"
	"claimdesk_backend/platform/logger"
	"claimdesk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the claims bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the claims module with all its dependencies.
func NewModule(pool *pgxpool.Pool, inventory service.InventoryReader, policies service.PolicyReader, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, inventory, policies, domain.SystemIDProvider{}, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "claims"
}

// Service returns the service layer for cross-module adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts claim routes on the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	claims := ctx.Protected.Group("/claims")
	claims.GET("", m.handler.List)
	claims.POST("", m.handler.Assemble)
	claims.GET("/requirements", m.handler.Requirements)
	claims.GET("/:id", m.handler.Get)
	claims.DELETE("/:id", m.handler.Delete)

	claims.PUT("/:id/incident", m.handler.UpdateIncident)
	claims.PUT("/:id/items/:itemID", m.handler.UpdateItem)
	claims.POST("/:id/advance", m.handler.Advance)
	claims.POST("/:id/finalize", m.handler.Finalize)

	claims.GET("/:id/metrics", m.handler.Metrics)
	claims.GET("/:id/next-action", m.handler.NextAction)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
