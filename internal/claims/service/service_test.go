package service

import (
	"context"
	"testing"
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

// fakeClaimRepo is an in-memory claims Repository.
type fakeClaimRepo struct {
	claims map[uuid.UUID]domain.ActiveClaim
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: make(map[uuid.UUID]domain.ActiveClaim)}
}

func (f *fakeClaimRepo) Create(_ context.Context, claim domain.ActiveClaim) error {
	f.claims[claim.ID] = claim
	return nil
}

func (f *fakeClaimRepo) GetByID(_ context.Context, id uuid.UUID) (domain.ActiveClaim, error) {
	claim, ok := f.claims[id]
	if !ok {
		return domain.ActiveClaim{}, apperr.NotFound("claim not found")
	}
	return claim, nil
}

func (f *fakeClaimRepo) List(_ context.Context) ([]repository.ClaimSummary, error) {
	var out []repository.ClaimSummary
	for _, claim := range f.claims {
		out = append(out, repository.ClaimSummary{
			ID:              claim.ID,
			Name:            claim.Name,
			Status:          claim.Status,
			Stage:           claim.Stage,
			IncidentType:    claim.Incident.IncidentType,
			TotalClaimValue: claim.TotalClaimValue,
			ItemCount:       len(claim.Items),
		})
	}
	return out, nil
}

func (f *fakeClaimRepo) UpdateIncident(_ context.Context, claim domain.ActiveClaim) error {
	if _, ok := f.claims[claim.ID]; !ok {
		return apperr.NotFound("claim not found")
	}
	f.claims[claim.ID] = claim
	return nil
}

func (f *fakeClaimRepo) UpdateItem(_ context.Context, claimID uuid.UUID, item domain.ClaimItem) (domain.ActiveClaim, error) {
	claim, ok := f.claims[claimID]
	if !ok {
		return domain.ActiveClaim{}, apperr.NotFound("claim not found")
	}
	for i := range claim.Items {
		if claim.Items[i].ID == item.ID {
			claim.Items[i] = item
			claim.RecalculateTotal()
			f.claims[claimID] = claim
			return claim, nil
		}
	}
	return domain.ActiveClaim{}, apperr.NotFound("claim item not found")
}

func (f *fakeClaimRepo) SetStage(_ context.Context, id uuid.UUID, stage domain.Stage) error {
	claim, ok := f.claims[id]
	if !ok {
		return apperr.NotFound("claim not found")
	}
	claim.Stage = stage
	f.claims[id] = claim
	return nil
}

func (f *fakeClaimRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.ClaimStatus) error {
	claim, ok := f.claims[id]
	if !ok {
		return apperr.NotFound("claim not found")
	}
	claim.Status = status
	f.claims[id] = claim
	return nil
}

func (f *fakeClaimRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.claims[id]; !ok {
		return apperr.NotFound("claim not found")
	}
	delete(f.claims, id)
	return nil
}

var _ repository.Repository = (*fakeClaimRepo)(nil)

type fakeInventory struct {
	items []invdomain.Item
}

func (f fakeInventory) MasterInventory(_ context.Context) ([]invdomain.Item, error) {
	return f.items, nil
}

type fakePolicies struct {
	active poldomain.Policy
}

func (f fakePolicies) ActivePolicy(_ context.Context) (poldomain.Policy, error) {
	return f.active, nil
}

func (f fakePolicies) PolicyByID(_ context.Context, id uuid.UUID) (poldomain.Policy, error) {
	if f.active.ID != id {
		return poldomain.Policy{}, apperr.NotFound("policy not found")
	}
	return f.active, nil
}

func testPolicy() poldomain.Policy {
	return poldomain.Policy{
		ID:                   uuid.New(),
		Provider:             "Acme Mutual",
		Deductible:           500,
		LossSettlementMethod: poldomain.SettlementRCV,
		Coverage: []poldomain.CoverageLimit{
			{Category: "Personal Property", Limit: 50000, Type: poldomain.CoverageMain},
		},
		Exclusions: []string{},
		IsActive:   true,
	}
}

func testInventory() []invdomain.Item {
	value := 1200.0
	return []invdomain.Item{
		{
			ID:               uuid.New(),
			Status:           invdomain.StatusActive,
			Name:             "Laptop",
			Category:         "Electronics",
			OriginalCost:     900,
			ReplacementValue: &value,
		},
		{
			ID:           uuid.New(),
			Status:       invdomain.StatusActive,
			Name:         "Desk Chair",
			Category:     "Furniture",
			OriginalCost: 250,
		},
	}
}

func testClaimService(repo repository.Repository, policy poldomain.Policy, items []invdomain.Item) *Service {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	return New(repo, fakeInventory{items: items}, fakePolicies{active: policy}, domain.SystemIDProvider{}, bus, log)
}

func TestAssemble_SnapshotsInventory(t *testing.T) {
	repo := newFakeClaimRepo()
	svc := testClaimService(repo, testPolicy(), testInventory())

	resp, err := svc.Assemble(context.Background(), transport.AssembleClaimRequest{
		IncidentType: "Fire",
		DateOfLoss:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("item count = %d, want 2", len(resp.Items))
	}
	if resp.TotalClaimValue != 1450 {
		t.Errorf("TotalClaimValue = %.2f, want 1450.00", resp.TotalClaimValue)
	}
	if resp.Status != string(domain.ClaimDraft) {
		t.Errorf("Status = %q, want draft", resp.Status)
	}
	if len(repo.claims) != 1 {
		t.Errorf("persisted claims = %d, want 1", len(repo.claims))
	}
}

func TestAssemble_MissingDateOfLoss(t *testing.T) {
	repo := newFakeClaimRepo()
	svc := testClaimService(repo, testPolicy(), testInventory())

	_, err := svc.Assemble(context.Background(), transport.AssembleClaimRequest{IncidentType: "Fire"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("error kind = %v, want KindValidation", apperr.GetKind(err))
	}
	if len(repo.claims) != 0 {
		t.Error("no claim should be persisted on validation failure")
	}
}

func TestFinalize_LocksClaim(t *testing.T) {
	repo := newFakeClaimRepo()
	svc := testClaimService(repo, testPolicy(), testInventory())

	created, err := svc.Assemble(context.Background(), transport.AssembleClaimRequest{
		IncidentType: "Fire",
		DateOfLoss:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	id, _ := uuid.Parse(created.ID)

	finalized, err := svc.Finalize(context.Background(), id)
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if finalized.Status != string(domain.ClaimFinalized) {
		t.Errorf("Status = %q, want finalized", finalized.Status)
	}
	if finalized.Stage != string(domain.StageSubmitted) {
		t.Errorf("Stage = %q, want submitted", finalized.Stage)
	}

	name := "Edited"
	_, err = svc.UpdateIncident(context.Background(), id, transport.UpdateIncidentRequest{Name: &name})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("editing a finalized claim: error kind = %v, want KindConflict", apperr.GetKind(err))
	}
	if _, err := svc.Finalize(context.Background(), id); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("double finalize: error kind = %v, want KindConflict", apperr.GetKind(err))
	}
}

func TestAdvanceStage_ForwardOnly(t *testing.T) {
	repo := newFakeClaimRepo()
	svc := testClaimService(repo, testPolicy(), testInventory())

	created, err := svc.Assemble(context.Background(), transport.AssembleClaimRequest{
		IncidentType: "Fire",
		DateOfLoss:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	id, _ := uuid.Parse(created.ID)

	advanced, err := svc.AdvanceStage(context.Background(), id, transport.AdvanceStageRequest{Stage: string(domain.StageValuation)})
	if err != nil {
		t.Fatalf("AdvanceStage returned error: %v", err)
	}
	if advanced.Stage != string(domain.StageValuation) {
		t.Errorf("Stage = %q, want valuation", advanced.Stage)
	}

	_, err = svc.AdvanceStage(context.Background(), id, transport.AdvanceStageRequest{Stage: string(domain.StageIncident)})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("regressing stage: error kind = %v, want KindConflict", apperr.GetKind(err))
	}

	_, err = svc.AdvanceStage(context.Background(), id, transport.AdvanceStageRequest{Stage: "shipping"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("unknown stage: error kind = %v, want KindValidation", apperr.GetKind(err))
	}
}

func TestUpdateItem_RecomputesTotal(t *testing.T) {
	repo := newFakeClaimRepo()
	svc := testClaimService(repo, testPolicy(), testInventory())

	created, err := svc.Assemble(context.Background(), transport.AssembleClaimRequest{
		IncidentType: "Fire",
		DateOfLoss:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	id, _ := uuid.Parse(created.ID)
	itemID, _ := uuid.Parse(created.Items[0].ID)

	excluded := string(domain.ItemExcluded)
	updated, err := svc.UpdateItem(context.Background(), id, itemID, transport.UpdateClaimItemRequest{Status: &excluded})
	if err != nil {
		t.Fatalf("UpdateItem returned error: %v", err)
	}

	var expected float64
	for _, item := range updated.Items {
		if item.Status == string(domain.ItemIncluded) || item.Status == string(domain.ItemFlagged) {
			expected += item.ClaimedValue
		}
	}
	if updated.TotalClaimValue != expected {
		t.Errorf("TotalClaimValue = %.2f, want %.2f", updated.TotalClaimValue, expected)
	}
}

func TestRequirements_NoPersistenceNeeded(t *testing.T) {
	svc := testClaimService(newFakeClaimRepo(), testPolicy(), nil)

	resp := svc.Requirements("Water Leak")
	if len(resp.RequiredDocuments) == 0 {
		t.Fatal("expected required documents for water incidents")
	}
	found := false
	for _, doc := range resp.RequiredDocuments {
		if doc == "Plumber invoice" {
			found = true
		}
	}
	if !found {
		t.Error("water checklist should include the plumber invoice")
	}
}
