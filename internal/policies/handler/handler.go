// Package handler exposes the policies module's HTTP endpoints.
package handler

import (
	"net/http"

	"claimdesk_backend/internal/policies/service"
	"claimdesk_backend/internal/policies/transport"
	"claimdesk_backend/platform/httpkit"
	"claimdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidPolicyID  = "invalid policy ID"
)

// Handler handles HTTP requests for policies.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new policies handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves all policies.
// GET /api/v1/policies
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetActive retrieves the active policy.
// GET /api/v1/policies/active
func (h *Handler) GetActive(c *gin.Context) {
	result, err := h.svc.GetActive(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID retrieves a policy.
// GET /api/v1/policies/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.policyID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create adds a new policy.
// POST /api/v1/policies
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Update applies a partial update to a policy.
// PUT /api/v1/policies/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.policyID(c)
	if !ok {
		return
	}

	var req transport.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a policy.
// DELETE /api/v1/policies/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.policyID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// Activate marks a policy as the active one.
// POST /api/v1/policies/:id/activate
func (h *Handler) Activate(c *gin.Context) {
	id, ok := h.policyID(c)
	if !ok {
		return
	}

	result, err := h.svc.Activate(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) policyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPolicyID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}
