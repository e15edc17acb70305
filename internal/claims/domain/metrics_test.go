package domain

import (
	"testing"
	"time"

	invdomain "claimdesk_backend/internal/inventory/domain"
	poldomain "claimdesk_backend/internal/policies/domain"

	"github.com/google/uuid"
)

func provenItem(name, category string, cost float64) invdomain.Item {
	item := testItem(name, category, cost)
	item.Evidence = []invdomain.Evidence{
		{ID: uuid.New(), ItemID: item.ID, Kind: invdomain.EvidenceImage, FileName: "front.jpg"},
		{ID: uuid.New(), ItemID: item.ID, Kind: invdomain.EvidenceDocument, FileName: "receipt.pdf"},
	}
	return item
}

func claimOf(items ...ClaimItem) ActiveClaim {
	c := ActiveClaim{Status: ClaimDraft, Items: items}
	c.RecalculateTotal()
	return c
}

func snapshotOf(item invdomain.Item, status ItemStatus) ClaimItem {
	return ClaimItem{
		ID:           uuid.New(),
		MasterItemID: item.ID,
		Description:  item.Name,
		Category:     item.Category,
		ClaimedValue: item.OriginalCost,
		Status:       status,
	}
}

func TestComputeMetrics_DeductibleFloor(t *testing.T) {
	item := provenItem("Lamp", "Furniture", 300)
	claim := claimOf(snapshotOf(item, ItemIncluded))
	policy := poldomain.Policy{Deductible: 500}

	m := ComputeMetrics(claim, policy, []invdomain.Item{item})

	if m.GrossPropertyLoss != 300 {
		t.Fatalf("expected gross 300, got %.2f", m.GrossPropertyLoss)
	}
	if m.NetPayout != 0 {
		t.Fatalf("expected net payout 0 when deductible exceeds gross, got %.2f", m.NetPayout)
	}
}

func TestComputeMetrics_ALETotal(t *testing.T) {
	item := provenItem("Sofa", "Furniture", 2000)
	claim := claimOf(snapshotOf(item, ItemIncluded))
	claim.Incident = Incident{
		DisplacementRange: &DateRange{
			Start: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC),
		},
		FairRentalValuePerDay: 350,
	}
	policy := poldomain.Policy{Deductible: 500}

	m := ComputeMetrics(claim, policy, []invdomain.Item{item})

	// One elapsed day, inclusive count 2.
	if m.ALETotal != 700 {
		t.Fatalf("expected ALE 700, got %.2f", m.ALETotal)
	}
	if m.NetPayout != 1500+700 {
		t.Fatalf("expected net payout 2200, got %.2f", m.NetPayout)
	}
	if m.NetPayout < m.ALETotal {
		t.Fatalf("net payout %.2f fell below ALE floor %.2f", m.NetPayout, m.ALETotal)
	}
}

func TestComputeMetrics_ALERequiresBothInputs(t *testing.T) {
	item := provenItem("Sofa", "Furniture", 2000)
	claim := claimOf(snapshotOf(item, ItemIncluded))
	claim.Incident = Incident{FairRentalValuePerDay: 350}

	m := ComputeMetrics(claim, poldomain.Policy{}, []invdomain.Item{item})
	if m.ALETotal != 0 {
		t.Fatalf("expected ALE 0 without a displacement range, got %.2f", m.ALETotal)
	}
}

func TestComputeMetrics_ProofCompleteness(t *testing.T) {
	proven := provenItem("Laptop", "Electronics", 900)

	photoOnly := testItem("Monitor", "Electronics", 250)
	photoOnly.Evidence = []invdomain.Evidence{
		{ID: uuid.New(), ItemID: photoOnly.ID, Kind: invdomain.EvidenceImage},
	}

	bare := testItem("Cable", "Electronics", 20)

	master := []invdomain.Item{proven, photoOnly, bare}
	claim := claimOf(
		snapshotOf(proven, ItemIncluded),
		snapshotOf(photoOnly, ItemIncluded),
		snapshotOf(bare, ItemIncluded),
	)

	m := ComputeMetrics(claim, poldomain.Policy{}, master)

	want := 100.0 / 3
	if diff := m.ProofCompleteness - want; diff > 0.01 || diff < -0.01 {
		t.Fatalf("expected proof completeness ~%.2f, got %.2f", want, m.ProofCompleteness)
	}

	// The bare item misses a photo; the photo-only item misses a receipt but
	// falls under the $200 threshold check only by value.
	if !m.HasIssue(IssueMissingPhoto) {
		t.Error("expected a missing-photo action item")
	}
	if !m.HasIssue(IssueMissingReceipt) {
		t.Error("expected a missing-receipt action item for the $250 monitor")
	}
	var receiptIssues int
	for _, ai := range m.ActionItems {
		if ai.Kind == IssueMissingReceipt {
			receiptIssues++
		}
	}
	if receiptIssues != 1 {
		t.Errorf("expected exactly 1 missing-receipt item (cable is under threshold), got %d", receiptIssues)
	}
}

func TestComputeMetrics_NoIncludedItems(t *testing.T) {
	excluded := testItem("Laptop", "Electronics", 900)
	claim := claimOf(snapshotOf(excluded, ItemExcluded))

	m := ComputeMetrics(claim, poldomain.Policy{}, []invdomain.Item{excluded})

	if m.GrossPropertyLoss != 0 {
		t.Errorf("expected gross 0, got %.2f", m.GrossPropertyLoss)
	}
	if m.ProofCompleteness != 100 {
		t.Errorf("expected proof completeness 100 with no included items, got %.2f", m.ProofCompleteness)
	}
	if len(m.ActionItems) != 0 {
		t.Errorf("expected no action items, got %d", len(m.ActionItems))
	}
}

func TestComputeMetrics_FlaggedItemRaisesSubLimitRisk(t *testing.T) {
	item := provenItem("Gold Watch", "Jewelry", 1500)
	snapshot := snapshotOf(item, ItemFlagged)
	claim := claimOf(snapshot)

	m := ComputeMetrics(claim, poldomain.Policy{}, []invdomain.Item{item})

	if !m.HasIssue(IssueSubLimitRisk) {
		t.Fatal("expected a sub-limit-risk action item for a flagged item")
	}
	if m.GrossPropertyLoss != 1500 {
		t.Errorf("flagged item should count toward gross, got %.2f", m.GrossPropertyLoss)
	}
}

func TestComputeMetrics_CoverageChecks(t *testing.T) {
	item := provenItem("Everything", "Household", 60000)
	claim := claimOf(snapshotOf(item, ItemIncluded))
	claim.Incident = Incident{
		DisplacementRange: &DateRange{
			Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
		},
		FairRentalValuePerDay: 400,
	}
	policy := poldomain.Policy{
		Deductible:     1000,
		CoverageDLimit: ptrFloat(10000),
		Coverage: []poldomain.CoverageLimit{
			{Category: "Personal Property", Limit: 50000, Type: poldomain.CoverageMain},
		},
	}

	m := ComputeMetrics(claim, policy, []invdomain.Item{item})

	if !m.HasIssue(IssueCoverageExceeded) {
		t.Error("expected coverage-limit-exceeded action item")
	}
	if !m.HasIssue(IssueALEExceeded) {
		t.Error("expected ale-limit-exceeded action item")
	}
	if m.CoverageHealth != 0 {
		t.Errorf("expected coverage health clamped to 0, got %.2f", m.CoverageHealth)
	}
}

func TestComputeMetrics_NoLossOfUseCapSkipsALECheck(t *testing.T) {
	item := provenItem("Sofa", "Furniture", 2000)
	claim := claimOf(snapshotOf(item, ItemIncluded))
	claim.Incident = Incident{
		DisplacementRange: &DateRange{
			Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
		},
		FairRentalValuePerDay: 400,
	}
	policy := poldomain.Policy{Deductible: 1000}

	m := ComputeMetrics(claim, policy, []invdomain.Item{item})
	if m.ALETotal == 0 {
		t.Fatal("expected a positive ALE total")
	}
	if m.HasIssue(IssueALEExceeded) {
		t.Error("no loss-of-use cap set, ALE check should not fire")
	}

	capped := policy
	capped.CoverageDLimit = ptrFloat(0)
	mc := ComputeMetrics(claim, capped, []invdomain.Item{item})
	if !mc.HasIssue(IssueALEExceeded) {
		t.Error("an explicit zero cap should flag any positive ALE")
	}
}

func TestComputeMetrics_CoverageHealth(t *testing.T) {
	item := provenItem("Sofa", "Furniture", 10000)
	claim := claimOf(snapshotOf(item, ItemIncluded))
	policy := poldomain.Policy{
		Coverage: []poldomain.CoverageLimit{
			{Category: "Personal Property", Limit: 50000, Type: poldomain.CoverageMain},
		},
	}

	m := ComputeMetrics(claim, policy, []invdomain.Item{item})
	if m.CoverageHealth != 80 {
		t.Fatalf("expected coverage health 80, got %.2f", m.CoverageHealth)
	}

	noLimit := ComputeMetrics(claim, poldomain.Policy{}, []invdomain.Item{item})
	if noLimit.CoverageHealth != 0 {
		t.Fatalf("expected coverage health 0 without a main limit, got %.2f", noLimit.CoverageHealth)
	}
}

func TestComputeMetrics_StrategyScore(t *testing.T) {
	item := provenItem("Laptop", "Electronics", 900)
	claim := claimOf(snapshotOf(item, ItemIncluded))
	policy := poldomain.Policy{Deductible: 100}

	m := ComputeMetrics(claim, policy, []invdomain.Item{item})

	// proof 100, payout viable: 100*0.5 + 100*0.3 + 80*0.2 = 96.
	if m.StrategyScore != 96 {
		t.Fatalf("expected strategy score 96, got %d", m.StrategyScore)
	}

	// Zero proof, zero payout: 0 + 0 + 16 = 16.
	bare := testItem("Cable", "Electronics", 20)
	zeroClaim := claimOf(snapshotOf(bare, ItemIncluded))
	z := ComputeMetrics(zeroClaim, poldomain.Policy{Deductible: 500}, []invdomain.Item{bare})
	if z.StrategyScore != 16 {
		t.Fatalf("expected strategy score 16, got %d", z.StrategyScore)
	}
}
