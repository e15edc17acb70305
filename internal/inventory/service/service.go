// Package service implements business logic for the master inventory.
package service

import (
	"context"
	"time"

	"claimdesk_backend/internal/adapters/storage"
	"claimdesk_backend/internal/events"
	"claimdesk_backend/internal/inventory/domain"
	"claimdesk_backend/internal/inventory/repository"
	"claimdesk_backend/internal/inventory/transport"
	"claimdesk_backend/platform/apperr"
	"claimdesk_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// EnrichmentQueuer enqueues a background enrichment job for an item.
// Optional: when nil, enrichment is simply unavailable.
type EnrichmentQueuer interface {
	EnqueueItemEnrichment(ctx context.Context, itemID uuid.UUID) error
}

// Service provides business logic for the master inventory.
type Service struct {
	repo     repository.Repository
	storage  storage.StorageService
	bucket   string
	bus      events.Bus
	log      *logger.Logger
	enricher EnrichmentQueuer
}

// New creates a new inventory service.
func New(repo repository.Repository, storageSvc storage.StorageService, bucket string, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: storageSvc,
		bucket:  bucket,
		bus:     bus,
		log:     log,
	}
}

// SetEnrichmentQueuer wires the optional background enrichment queue.
func (s *Service) SetEnrichmentQueuer(q EnrichmentQueuer) {
	s.enricher = q
}

// Create inserts a new master item. Manually entered items start active.
func (s *Service) Create(ctx context.Context, req transport.CreateItemRequest) (transport.ItemResponse, error) {
	item := domain.Item{
		ID:               uuid.New(),
		Status:           domain.StatusActive,
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Brand:            req.Brand,
		Model:            req.Model,
		SerialNumber:     req.SerialNumber,
		OriginalCost:     req.OriginalCost,
		ReplacementValue: req.ReplacementValue,
		PurchaseDate:     req.PurchaseDate,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return transport.ItemResponse{}, err
	}

	s.bus.Publish(ctx, events.InventoryItemCreated{
		BaseEvent: events.NewBaseEvent(),
		ItemID:    created.ID,
		Name:      created.Name,
		Category:  created.Category,
		Status:    string(created.Status),
	})

	return toItemResponse(created), nil
}

// GetByID retrieves one item with evidence.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ItemResponse{}, err
	}
	return toItemResponse(item), nil
}

// List retrieves items matching the filter.
func (s *Service) List(ctx context.Context, req transport.ListItemsRequest) (transport.ItemListResponse, error) {
	if req.Status != "" && !domain.IsKnownStatus(domain.Status(req.Status)) {
		return transport.ItemListResponse{}, apperr.BadRequest("unknown status filter")
	}

	items, err := s.repo.List(ctx, repository.ListParams{
		Status:   req.Status,
		Category: req.Category,
		Search:   req.Search,
	})
	if err != nil {
		return transport.ItemListResponse{}, err
	}

	responses := make([]transport.ItemResponse, len(items))
	for i, item := range items {
		responses[i] = toItemResponse(item)
	}
	return transport.ItemListResponse{Items: responses, Total: len(responses)}, nil
}

// Update applies a partial update to an item.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateItemRequest) (transport.ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ItemResponse{}, err
	}

	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !domain.IsKnownStatus(status) {
			return transport.ItemResponse{}, apperr.Validation("unknown item status")
		}
		item.Status = status
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.Model != nil {
		item.Model = *req.Model
	}
	if req.SerialNumber != nil {
		item.SerialNumber = *req.SerialNumber
	}
	if req.OriginalCost != nil {
		item.OriginalCost = *req.OriginalCost
	}
	if req.ReplacementValue != nil {
		item.ReplacementValue = req.ReplacementValue
	}
	if req.PurchaseDate != nil {
		item.PurchaseDate = req.PurchaseDate
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return transport.ItemResponse{}, err
	}
	updated.Evidence = item.Evidence
	return toItemResponse(updated), nil
}

// Delete removes an item. Evidence binaries are removed from object storage
// best-effort; the database row is the source of truth.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(5)
	for _, ev := range item.Evidence {
		ev := ev
		g.Go(func() error {
			if err := s.storage.DeleteObject(gctx, s.bucket, ev.FileKey); err != nil {
				s.log.Warn("failed to delete evidence object", "fileKey", ev.FileKey, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return nil
}

// GenerateUploadURL returns a presigned PUT URL for a new evidence file.
func (s *Service) GenerateUploadURL(ctx context.Context, itemID uuid.UUID, req transport.UploadURLRequest) (*storage.PresignedURL, error) {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	folder := "items/" + itemID.String()
	url, err := s.storage.GenerateUploadURL(ctx, s.bucket, folder, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "cannot generate upload URL", err)
	}
	return url, nil
}

// RegisterEvidence records an evidence attachment after upload. The media
// kind is derived from the content type.
func (s *Service) RegisterEvidence(ctx context.Context, itemID uuid.UUID, req transport.RegisterEvidenceRequest) (transport.EvidenceResponse, error) {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return transport.EvidenceResponse{}, err
	}

	kind := domain.EvidenceDocument
	if storage.IsImageContentType(req.ContentType) {
		kind = domain.EvidenceImage
	} else if !storage.IsDocumentContentType(req.ContentType) {
		return transport.EvidenceResponse{}, apperr.Validation("evidence must be an image or a document")
	}

	ev := domain.Evidence{
		ID:          uuid.New(),
		ItemID:      itemID,
		Kind:        kind,
		Purpose:     req.Purpose,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileKey:     req.FileKey,
	}

	created, err := s.repo.AddEvidence(ctx, ev)
	if err != nil {
		return transport.EvidenceResponse{}, err
	}

	s.bus.Publish(ctx, events.EvidenceAttached{
		BaseEvent:  events.NewBaseEvent(),
		ItemID:     itemID,
		EvidenceID: created.ID,
		Kind:       string(created.Kind),
		FileName:   created.FileName,
	})

	return toEvidenceResponse(created), nil
}

// GenerateDownloadURL returns a presigned GET URL for an evidence file.
func (s *Service) GenerateDownloadURL(ctx context.Context, itemID, evidenceID uuid.UUID) (*storage.PresignedURL, error) {
	ev, err := s.repo.GetEvidence(ctx, itemID, evidenceID)
	if err != nil {
		return nil, err
	}
	return s.storage.GenerateDownloadURL(ctx, s.bucket, ev.FileKey)
}

// DeleteEvidence removes an evidence record and its stored object.
func (s *Service) DeleteEvidence(ctx context.Context, itemID, evidenceID uuid.UUID) error {
	ev, err := s.repo.GetEvidence(ctx, itemID, evidenceID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteEvidence(ctx, itemID, evidenceID); err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, s.bucket, ev.FileKey); err != nil {
		s.log.Warn("failed to delete evidence object", "fileKey", ev.FileKey, "error", err)
	}
	return nil
}

// RequestEnrichment queues a background enrichment job for a sparse item.
func (s *Service) RequestEnrichment(ctx context.Context, itemID uuid.UUID) error {
	if s.enricher == nil {
		return apperr.New(apperr.KindUnavailable, "enrichment is not configured")
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return err
	}
	return s.enricher.EnqueueItemEnrichment(ctx, itemID)
}

// MasterInventory returns the full inventory snapshot for claim assembly.
func (s *Service) MasterInventory(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListAll(ctx)
}

func toItemResponse(item domain.Item) transport.ItemResponse {
	resp := transport.ItemResponse{
		ID:               item.ID.String(),
		Status:           string(item.Status),
		Name:             item.Name,
		Description:      item.Description,
		Category:         item.Category,
		Brand:            item.Brand,
		Model:            item.Model,
		SerialNumber:     item.SerialNumber,
		OriginalCost:     item.OriginalCost,
		ReplacementValue: item.ReplacementValue,
		Evidence:         make([]transport.EvidenceResponse, 0, len(item.Evidence)),
		CreatedAt:        item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        item.UpdatedAt.Format(time.RFC3339),
	}
	if item.PurchaseDate != nil {
		formatted := item.PurchaseDate.Format(time.RFC3339)
		resp.PurchaseDate = &formatted
	}
	for _, ev := range item.Evidence {
		resp.Evidence = append(resp.Evidence, toEvidenceResponse(ev))
	}
	return resp
}

func toEvidenceResponse(ev domain.Evidence) transport.EvidenceResponse {
	return transport.EvidenceResponse{
		ID:          ev.ID.String(),
		Kind:        string(ev.Kind),
		Purpose:     ev.Purpose,
		FileName:    ev.FileName,
		ContentType: ev.ContentType,
		CreatedAt:   ev.CreatedAt.Format(time.RFC3339),
	}
}
