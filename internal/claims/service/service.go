// Package service orchestrates the claim engine: it snapshots the master
// inventory and the active policy, runs assembly, and persists the result.
// Metrics and next-action are derived on every read and never stored.
package service

import (
	"context"
	"errors"
	"time"

	"claimdesk_backend/internal/claims/domain"
	"claimdesk_backend/internal/claims/repository"
	"claimdesk_backend/internal/claims/transport"
	"claimdesk_backend/internal/events"
	invdomain "claimdesk_backend/internal/inventory/domain"
	poldomain "claimdesk_backend/internal/policies/domain"
	"claimdesk_backend/platform/apperr"
	"claimdesk_backend/platform/logger"

	"github.com/google/uuid"
)

// InventoryReader supplies the master inventory snapshot for assembly and
// metrics. The claims module never writes to the master ledger.
type InventoryReader interface {
	MasterInventory(ctx context.Context) ([]invdomain.Item, error)
}

// PolicyReader supplies policies to the engine.
type PolicyReader interface {
	ActivePolicy(ctx context.Context) (poldomain.Policy, error)
	PolicyByID(ctx context.Context, id uuid.UUID) (poldomain.Policy, error)
}

// Service provides business logic for claims.
type Service struct {
	repo      repository.Repository
	inventory InventoryReader
	policies  PolicyReader
	ids       domain.IDProvider
	bus       events.Bus
	log       *logger.Logger
}

// New creates a new claims service.
func New(repo repository.Repository, inventory InventoryReader, policies PolicyReader, ids domain.IDProvider, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		inventory: inventory,
		policies:  policies,
		ids:       ids,
		bus:       bus,
		log:       log,
	}
}

// Assemble builds and persists a new claim from the master inventory, the
// active policy, and the incident details.
func (s *Service) Assemble(ctx context.Context, req transport.AssembleClaimRequest) (transport.ClaimResponse, error) {
	policy, err := s.policies.ActivePolicy(ctx)
	if err != nil {
		return transport.ClaimResponse{}, err
	}

	master, err := s.inventory.MasterInventory(ctx)
	if err != nil {
		return transport.ClaimResponse{}, err
	}

	incident := domain.Incident{
		Name:                  req.Name,
		IncidentType:          req.IncidentType,
		DateOfLoss:            req.DateOfLoss,
		Location:              req.Location,
		PoliceReport:          req.PoliceReport,
		Description:           req.Description,
		FairRentalValuePerDay: req.FairRentalValuePerDay,
	}
	if req.DisplacementStart != nil && req.DisplacementEnd != nil {
		incident.DisplacementRange = &domain.DateRange{
			Start: *req.DisplacementStart,
			End:   *req.DisplacementEnd,
		}
	}

	claim, err := domain.AssembleClaim(master, policy, incident, s.ids)
	if err != nil {
		if errors.Is(err, domain.ErrMissingDateOfLoss) {
			return transport.ClaimResponse{}, apperr.Validation(err.Error())
		}
		return transport.ClaimResponse{}, err
	}
	if req.Name != "" {
		claim.Name = req.Name
	}

	if err := s.repo.Create(ctx, claim); err != nil {
		return transport.ClaimResponse{}, err
	}

	s.bus.Publish(ctx, events.ClaimAssembled{
		BaseEvent:    events.NewBaseEvent(),
		ClaimID:      claim.ID,
		PolicyID:     claim.PolicyID,
		Name:         claim.Name,
		IncidentType: claim.Incident.IncidentType,
		ItemCount:    len(claim.Items),
		TotalValue:   claim.TotalClaimValue,
	})
	s.log.Info("claim assembled",
		"claimId", claim.ID.String(),
		"items", len(claim.Items),
		"total", claim.TotalClaimValue,
	)

	return toClaimResponse(claim), nil
}

// GetByID retrieves a claim with all items.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.ClaimResponse, error) {
	claim, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ClaimResponse{}, err
	}
	return toClaimResponse(claim), nil
}

// List retrieves claim summaries.
func (s *Service) List(ctx context.Context) (transport.ClaimListResponse, error) {
	summaries, err := s.repo.List(ctx)
	if err != nil {
		return transport.ClaimListResponse{}, err
	}

	claims := make([]transport.ClaimSummaryResponse, len(summaries))
	for i, sum := range summaries {
		claims[i] = transport.ClaimSummaryResponse{
			ID:              sum.ID.String(),
			Name:            sum.Name,
			Status:          string(sum.Status),
			Stage:           string(sum.Stage),
			IncidentType:    sum.IncidentType,
			TotalClaimValue: sum.TotalClaimValue,
			ItemCount:       sum.ItemCount,
			GeneratedAt:     sum.GeneratedAt,
		}
	}
	return transport.ClaimListResponse{Claims: claims, Total: len(claims)}, nil
}

// UpdateIncident edits incident details on a draft claim. The date of loss is
// fixed at assembly time and cannot be changed afterwards.
func (s *Service) UpdateIncident(ctx context.Context, id uuid.UUID, req transport.UpdateIncidentRequest) (transport.ClaimResponse, error) {
	claim, err := s.mutableClaim(ctx, id)
	if err != nil {
		return transport.ClaimResponse{}, err
	}

	if req.Name != nil {
		claim.Incident.Name = *req.Name
	}
	if req.IncidentType != nil {
		claim.Incident.IncidentType = *req.IncidentType
	}
	if req.Location != nil {
		claim.Incident.Location = *req.Location
	}
	if req.PoliceReport != nil {
		claim.Incident.PoliceReport = *req.PoliceReport
	}
	if req.Description != nil {
		claim.Incident.Description = *req.Description
	}
	if req.FairRentalValuePerDay != nil {
		claim.Incident.FairRentalValuePerDay = *req.FairRentalValuePerDay
	}
	if req.DisplacementStart != nil && req.DisplacementEnd != nil {
		claim.Incident.DisplacementRange = &domain.DateRange{
			Start: *req.DisplacementStart,
			End:   *req.DisplacementEnd,
		}
	}

	if err := s.repo.UpdateIncident(ctx, claim); err != nil {
		return transport.ClaimResponse{}, err
	}
	return toClaimResponse(claim), nil
}

// UpdateItem edits one claim item. The claim total is recomputed inside the
// repository transaction so it never drifts from the item sum.
func (s *Service) UpdateItem(ctx context.Context, claimID, itemID uuid.UUID, req transport.UpdateClaimItemRequest) (transport.ClaimResponse, error) {
	claim, err := s.mutableClaim(ctx, claimID)
	if err != nil {
		return transport.ClaimResponse{}, err
	}

	var item *domain.ClaimItem
	for i := range claim.Items {
		if claim.Items[i].ID == itemID {
			item = &claim.Items[i]
			break
		}
	}
	if item == nil {
		return transport.ClaimResponse{}, apperr.NotFound("claim item not found")
	}

	if req.Status != nil {
		item.Status = domain.ItemStatus(*req.Status)
	}
	if req.ClaimedValue != nil {
		item.ClaimedValue = *req.ClaimedValue
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.NarrativeTag != nil {
		item.NarrativeTag = *req.NarrativeTag
	}
	if req.ExclusionReason != nil {
		item.ExclusionReason = *req.ExclusionReason
	}

	updated, err := s.repo.UpdateItem(ctx, claimID, *item)
	if err != nil {
		return transport.ClaimResponse{}, err
	}
	return toClaimResponse(updated), nil
}

// AdvanceStage moves a claim forward. Stages never regress.
func (s *Service) AdvanceStage(ctx context.Context, id uuid.UUID, req transport.AdvanceStageRequest) (transport.ClaimResponse, error) {
	claim, err := s.mutableClaim(ctx, id)
	if err != nil {
		return transport.ClaimResponse{}, err
	}

	next := domain.Stage(req.Stage)
	if !domain.IsKnownStage(next) {
		return transport.ClaimResponse{}, apperr.Validation("unknown claim stage")
	}
	if !claim.Stage.CanAdvanceTo(next) {
		return transport.ClaimResponse{}, apperr.Conflict("claim stage can only move forward")
	}

	if err := s.repo.SetStage(ctx, id, next); err != nil {
		return transport.ClaimResponse{}, err
	}

	s.bus.Publish(ctx, events.ClaimStageChanged{
		BaseEvent: events.NewBaseEvent(),
		ClaimID:   id,
		OldStage:  string(claim.Stage),
		NewStage:  string(next),
	})

	claim.Stage = next
	return toClaimResponse(claim), nil
}

// Finalize locks a claim for submission and moves it to the Submitted stage.
func (s *Service) Finalize(ctx context.Context, id uuid.UUID) (transport.ClaimResponse, error) {
	claim, err := s.mutableClaim(ctx, id)
	if err != nil {
		return transport.ClaimResponse{}, err
	}

	if err := s.repo.SetStatus(ctx, id, domain.ClaimFinalized); err != nil {
		return transport.ClaimResponse{}, err
	}
	if claim.Stage != domain.StageSubmitted {
		if err := s.repo.SetStage(ctx, id, domain.StageSubmitted); err != nil {
			return transport.ClaimResponse{}, err
		}
		claim.Stage = domain.StageSubmitted
	}
	claim.Status = domain.ClaimFinalized

	s.bus.Publish(ctx, events.ClaimFinalized{
		BaseEvent:    events.NewBaseEvent(),
		ClaimID:      claim.ID,
		Name:         claim.Name,
		IncidentType: claim.Incident.IncidentType,
		TotalValue:   claim.TotalClaimValue,
		ItemCount:    len(claim.Items),
	})

	return toClaimResponse(claim), nil
}

// Delete removes a claim. The master inventory is untouched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Metrics computes the financial projection for a claim on demand.
func (s *Service) Metrics(ctx context.Context, id uuid.UUID) (transport.MetricsResponse, error) {
	metrics, _, err := s.computeMetrics(ctx, id)
	if err != nil {
		return transport.MetricsResponse{}, err
	}
	return toMetricsResponse(metrics), nil
}

// NextAction returns the single next recommended step for a claim.
func (s *Service) NextAction(ctx context.Context, id uuid.UUID) (transport.ActionPlanResponse, error) {
	metrics, claim, err := s.computeMetrics(ctx, id)
	if err != nil {
		return transport.ActionPlanResponse{}, err
	}

	plan := domain.NextAction(claim, metrics)
	return transport.ActionPlanResponse{
		Action: plan.Action,
		Stage:  string(plan.Stage),
		Reason: plan.Reason,
	}, nil
}

// Requirements returns the document and task checklist for an incident type.
func (s *Service) Requirements(incidentType string) transport.RequirementsResponse {
	reqs := domain.RequirementsFor(incidentType)
	return transport.RequirementsResponse{
		IncidentType:      incidentType,
		RequiredDocuments: reqs.RequiredDocuments,
		RecommendedTasks:  reqs.RecommendedTasks,
	}
}

func (s *Service) computeMetrics(ctx context.Context, id uuid.UUID) (domain.ClaimMetrics, domain.ActiveClaim, error) {
	claim, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ClaimMetrics{}, domain.ActiveClaim{}, err
	}

	policy, err := s.policies.PolicyByID(ctx, claim.PolicyID)
	if err != nil {
		return domain.ClaimMetrics{}, domain.ActiveClaim{}, err
	}

	master, err := s.inventory.MasterInventory(ctx)
	if err != nil {
		return domain.ClaimMetrics{}, domain.ActiveClaim{}, err
	}

	return domain.ComputeMetrics(claim, policy, master), claim, nil
}

// mutableClaim loads a claim and rejects edits on finalized ones.
func (s *Service) mutableClaim(ctx context.Context, id uuid.UUID) (domain.ActiveClaim, error) {
	claim, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ActiveClaim{}, err
	}
	if claim.Status == domain.ClaimFinalized {
		return domain.ActiveClaim{}, apperr.Conflict("claim is finalized")
	}
	return claim, nil
}

func toClaimResponse(claim domain.ActiveClaim) transport.ClaimResponse {
	items := make([]transport.ClaimItemResponse, len(claim.Items))
	for i, item := range claim.Items {
		items[i] = transport.ClaimItemResponse{
			ID:              item.ID.String(),
			MasterItemID:    item.MasterItemID.String(),
			Description:     item.Description,
			Category:        item.Category,
			ClaimedValue:    item.ClaimedValue,
			ValuationMethod: string(item.ValuationMethod),
			NarrativeTag:    item.NarrativeTag,
			Status:          string(item.Status),
			ExclusionReason: item.ExclusionReason,
			PolicyNotes:     item.PolicyNotes,
		}
	}

	incident := transport.IncidentResponse{
		Name:                  claim.Incident.Name,
		IncidentType:          claim.Incident.IncidentType,
		DateOfLoss:            claim.Incident.DateOfLoss.Format(time.RFC3339),
		Location:              claim.Incident.Location,
		PoliceReport:          claim.Incident.PoliceReport,
		Description:           claim.Incident.Description,
		FairRentalValuePerDay: claim.Incident.FairRentalValuePerDay,
	}
	if claim.Incident.DisplacementRange != nil {
		start := claim.Incident.DisplacementRange.Start.Format(time.RFC3339)
		end := claim.Incident.DisplacementRange.End.Format(time.RFC3339)
		incident.DisplacementStart = &start
		incident.DisplacementEnd = &end
	}

	return transport.ClaimResponse{
		ID:              claim.ID.String(),
		Name:            claim.Name,
		Status:          string(claim.Status),
		PolicyID:        claim.PolicyID.String(),
		GeneratedAt:     claim.GeneratedAt.Format(time.RFC3339),
		TotalClaimValue: claim.TotalClaimValue,
		Stage:           string(claim.Stage),
		Incident:        incident,
		Items:           items,
	}
}

func toMetricsResponse(m domain.ClaimMetrics) transport.MetricsResponse {
	actionItems := make([]transport.ActionItemResponse, len(m.ActionItems))
	for i, ai := range m.ActionItems {
		resp := transport.ActionItemResponse{
			Kind:     ai.Kind,
			Severity: string(ai.Severity),
			Message:  ai.Message,
		}
		if ai.ItemID != uuid.Nil {
			resp.ItemID = ai.ItemID.String()
		}
		actionItems[i] = resp
	}

	return transport.MetricsResponse{
		GrossPropertyLoss: m.GrossPropertyLoss,
		Deductible:        m.Deductible,
		ALETotal:          m.ALETotal,
		NetPayout:         m.NetPayout,
		ProofCompleteness: m.ProofCompleteness,
		CoverageHealth:    m.CoverageHealth,
		StrategyScore:     m.StrategyScore,
		ActionItems:       actionItems,
	}
}
