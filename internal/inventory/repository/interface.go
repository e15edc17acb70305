package repository

import (
	"context"

	"claimdesk_backend/internal/inventory/domain"

	"github.com/google/uuid"
)

// ListParams filters an inventory listing.
type ListParams struct {
	Status   string
	Category string
	Search   string
}

// Repository defines persistence operations for master inventory items.
type Repository interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error)
	List(ctx context.Context, params ListParams) ([]domain.Item, error)
	ListAll(ctx context.Context) ([]domain.Item, error)
	Update(ctx context.Context, item domain.Item) (domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddEvidence(ctx context.Context, ev domain.Evidence) (domain.Evidence, error)
	GetEvidence(ctx context.Context, itemID, evidenceID uuid.UUID) (domain.Evidence, error)
	DeleteEvidence(ctx context.Context, itemID, evidenceID uuid.UUID) error
}
