// Package handler exposes the inventory module's HTTP endpoints.
package handler

import (
	"net/http"

	"claimdesk_backend/internal/inventory/service"
	"claimdesk_backend/internal/inventory/transport"
	"claimdesk_backend/platform/httpkit"
	"claimdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidItemID    = "invalid item ID"
	msgInvalidEvidence  = "invalid evidence ID"
)

// Handler handles HTTP requests for the master inventory.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new inventory handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves inventory items.
// GET /api/v1/items
func (h *Handler) List(c *gin.Context) {
	var req transport.ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID retrieves a single item with evidence.
// GET /api/v1/items/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create adds a new master item.
// POST /api/v1/items
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateItemRequest
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

// Update applies a partial update to an item.
// PUT /api/v1/items/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req transport.UpdateItemRequest
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

// Delete removes an item.
// DELETE /api/v1/items/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// UploadURL returns a presigned evidence upload URL.
// POST /api/v1/items/:id/evidence/upload-url
func (h *Handler) UploadURL(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req transport.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.GenerateUploadURL(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RegisterEvidence records an uploaded evidence file on the item.
// POST /api/v1/items/:id/evidence
func (h *Handler) RegisterEvidence(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req transport.RegisterEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.RegisterEvidence(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// DownloadURL returns a presigned download URL for an evidence file.
// GET /api/v1/items/:id/evidence/:evidenceID/download-url
func (h *Handler) DownloadURL(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	evidenceID, err := uuid.Parse(c.Param("evidenceID"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidEvidence, nil)
		return
	}

	result, err := h.svc.GenerateDownloadURL(c.Request.Context(), id, evidenceID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteEvidence removes an evidence record.
// DELETE /api/v1/items/:id/evidence/:evidenceID
func (h *Handler) DeleteEvidence(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	evidenceID, err := uuid.Parse(c.Param("evidenceID"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidEvidence, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteEvidence(c.Request.Context(), id, evidenceID)) {
		return
	}
	httpkit.NoContent(c)
}

// Enrich queues a background enrichment job for the item.
// POST /api/v1/items/:id/enrich
func (h *Handler) Enrich(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.RequestEnrichment(c.Request.Context(), id)) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, gin.H{"status": "queued"})
}

func (h *Handler) itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidItemID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}
