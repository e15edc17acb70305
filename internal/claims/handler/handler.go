// Package handler provides HTTP handlers for claim assembly and review.
package handler

import (
	"claimdesk_backend/internal/claims/service"
	"claimdesk_backend/internal/claims/transport"
	"claimdesk_backend/platform/apperr"
	"claimdesk_backend/platform/httpkit"
	"claimdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles claim HTTP requests.
type Handler struct {
	service   *service.Service
	validator *validator.Validator
}

// New creates a new claims handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{service: svc, validator: val}
}

// Assemble handles POST /claims.
func (h *Handler) Assemble(c *gin.Context) {
	var req transport.AssembleClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	resp, err := h.service.Assemble(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, resp)
}

// List handles GET /claims.
func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

// Get handles GET /claims/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

// UpdateIncident handles PUT /claims/:id/incident.
func (h *Handler) UpdateIncident(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	var req transport.UpdateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	resp, err := h.service.UpdateIncident(c.Request.Context(), id, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

// UpdateItem handles PUT /claims/:id/items/:itemID.
func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid item ID"))
		return
	}

	var req transport.UpdateClaimItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	resp, err := h.service.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

// Advance handles POST /claims/:id/advance.
func (h *Handler) Advance(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	var req transport.AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(err.Error()))
		return
	}

	resp, err := h.service.AdvanceStage(c.Request.Context(), id, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

// Finalize handles POST /claims/:id/finalize.
func (h *Handler) Finalize(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	resp, err := h.service.Finalize(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

// Delete handles DELETE /claims/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.NoContent(c)
}

// Metrics handles GET /claims/:id/metrics.
func (h *Handler) Metrics(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	resp, err := h.service.Metrics(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

// NextAction handles GET /claims/:id/next-action.
func (h *Handler) NextAction(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	resp, err := h.service.NextAction(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

// Requirements handles GET /claims/requirements.
func (h *Handler) Requirements(c *gin.Context) {
	incidentType := c.Query("incidentType")
	httpkit.OK(c, h.service.Requirements(incidentType))
}

func claimID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid claim ID")
	}
	return id, nil
}
