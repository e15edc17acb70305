// Package transport defines request/response DTOs for the inventory module.
package transport

import "time"

// CreateItemRequest creates a new master inventory item.
type CreateItemRequest struct {
	Name             string     `json:"name" validate:"required,max=200"`
	Description      string     `json:"description" validate:"max=2000"`
	Category         string     `json:"category" validate:"required,max=100"`
	Brand            string     `json:"brand" validate:"max=100"`
	Model            string     `json:"model" validate:"max=100"`
	SerialNumber     string     `json:"serialNumber" validate:"max=100"`
	OriginalCost     float64    `json:"originalCost" validate:"gte=0"`
	ReplacementValue *float64   `json:"replacementValue" validate:"omitempty,gte=0"`
	PurchaseDate     *time.Time `json:"purchaseDate"`
}

// UpdateItemRequest applies a partial update to a master item.
// Nil fields are left unchanged.
type UpdateItemRequest struct {
	Name             *string    `json:"name" validate:"omitempty,max=200"`
	Description      *string    `json:"description" validate:"omitempty,max=2000"`
	Category         *string    `json:"category" validate:"omitempty,max=100"`
	Brand            *string    `json:"brand" validate:"omitempty,max=100"`
	Model            *string    `json:"model" validate:"omitempty,max=100"`
	SerialNumber     *string    `json:"serialNumber" validate:"omitempty,max=100"`
	OriginalCost     *float64   `json:"originalCost" validate:"omitempty,gte=0"`
	ReplacementValue *float64   `json:"replacementValue" validate:"omitempty,gte=0"`
	PurchaseDate     *time.Time `json:"purchaseDate"`
	Status           *string    `json:"status"`
}

// ListItemsRequest filters the inventory list.
type ListItemsRequest struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// EvidenceResponse is an evidence attachment on an item.
type EvidenceResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Purpose     string `json:"purpose"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	CreatedAt   string `json:"createdAt"`
}

// ItemResponse is the API shape of a master inventory item.
type ItemResponse struct {
	ID               string             `json:"id"`
	Status           string             `json:"status"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Category         string             `json:"category"`
	Brand            string             `json:"brand,omitempty"`
	Model            string             `json:"model,omitempty"`
	SerialNumber     string             `json:"serialNumber,omitempty"`
	OriginalCost     float64            `json:"originalCost"`
	ReplacementValue *float64           `json:"replacementValue,omitempty"`
	PurchaseDate     *string            `json:"purchaseDate,omitempty"`
	Evidence         []EvidenceResponse `json:"evidence"`
	CreatedAt        string             `json:"createdAt"`
	UpdatedAt        string             `json:"updatedAt"`
}

// ItemListResponse wraps an inventory listing.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// UploadURLRequest asks for a presigned evidence upload URL.
type UploadURLRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=150"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,gt=0"`
}

// RegisterEvidenceRequest records an evidence attachment after the client
// has uploaded the binary through the presigned URL.
type RegisterEvidenceRequest struct {
	FileKey     string `json:"fileKey" validate:"required,max=500"`
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=150"`
	Purpose     string `json:"purpose" validate:"max=100"`
}
