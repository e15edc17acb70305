// Package auth provides the authentication bounded context module.
// This deployment serves a single account: the configured API key is
// exchanged for short-lived JWT access tokens.
package auth

import (
	"claimdesk_backend/internal/auth/handler"
	"claimdesk_backend/internal/auth/service"
	apphttp "claimdesk_backend/internal/http"
	"claimdesk_backend/platform/config"
	"claimdesk_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module.
func NewModule(cfg config.AuthConfig, val *validator.Validator) *Module {
	svc := service.New(cfg)
	h := handler.New(svc, val)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes. The token endpoint sits outside the
// protected group but behind the stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	authGroup.POST("/token", m.handler.Token)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
