// Package handler exposes the auth module's HTTP endpoints.
package handler

import (
	"net/http"

	"claimdesk_backend/internal/auth/service"
	"claimdesk_backend/internal/auth/transport"
	"claimdesk_backend/platform/httpkit"
	"claimdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Token exchanges the API key for a JWT access token.
// POST /api/v1/auth/token
func (h *Handler) Token(c *gin.Context) {
	var req transport.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.svc.ExchangeToken(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
