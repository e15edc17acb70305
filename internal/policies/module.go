// Package policies provides the policies bounded context module.
// A policy is the immutable input to claim assembly; at most one policy is
// active at a time.
package policies

import (
	apphttp "claimdesk_backend/internal/http"
	"claimdesk_backend/internal/policies/handler"
	"claimdesk_backend/internal/policies/repository"
	"claimdesk_backend/internal/policies/service"
	"claimdesk_backend/platform/logger"
	"claimdesk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the policies bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the policies module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "policies"
}

// Service returns the service layer for cross-module adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts policy routes on the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	policies := ctx.Protected.Group("/policies")
	policies.GET("", m.handler.List)
	policies.POST("", m.handler.Create)
	policies.GET("/active", m.handler.GetActive)
	policies.GET("/:id", m.handler.GetByID)
	policies.PUT("/:id", m.handler.Update)
	policies.DELETE("/:id", m.handler.Delete)
	policies.POST("/:id/activate", m.handler.Activate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
