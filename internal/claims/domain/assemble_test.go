package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	invdomain "claimdesk_backend/internal/inventory/domain"
	poldomain "claimdesk_backend/internal/policies/domain"

	"github.com/google/uuid"
)

// fakeIDProvider hands out sequential UUIDs and a fixed clock so assembly
// output is reproducible.
type fakeIDProvider struct {
	seq int
	now time.Time
}

func (f *fakeIDProvider) NewID() uuid.UUID {
	f.seq++
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", f.seq))
}

func (f *fakeIDProvider) Now() time.Time { return f.now }

func newFakeIDs() *fakeIDProvider {
	return &fakeIDProvider{now: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func ptrFloat(v float64) *float64 { return &v }

func ptrTime(t time.Time) *time.Time { return &t }

func testItem(name, category string, cost float64) invdomain.Item {
	return invdomain.Item{
		ID:           uuid.New(),
		Status:       invdomain.StatusActive,
		Name:         name,
		Category:     category,
		OriginalCost: cost,
	}
}

func TestAssembleClaim_MissingDateOfLoss(t *testing.T) {
	_, err := AssembleClaim(nil, poldomain.Policy{}, Incident{IncidentType: "Fire"}, newFakeIDs())
	if !errors.Is(err, ErrMissingDateOfLoss) {
		t.Fatalf("expected ErrMissingDateOfLoss, got %v", err)
	}
}

func TestAssembleClaim_IncidentExclusion(t *testing.T) {
	policy := poldomain.Policy{Exclusions: []string{"Flood"}}
	incident := Incident{
		IncidentType: "Flood Damage",
		DateOfLoss:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	master := []invdomain.Item{
		testItem("Sofa", "Furniture", 1200),
		testItem("Laptop", "Electronics", 900),
	}

	claim, err := AssembleClaim(master, policy, incident, newFakeIDs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claim.Items) != 2 {
		t.Fatalf("expected 2 claim items, got %d", len(claim.Items))
	}
	want := "Incident type 'Flood Damage' matches policy exclusion."
	for _, item := range claim.Items {
		if item.Status != ItemExcluded {
			t.Errorf("item %q: expected status excluded, got %s", item.Description, item.Status)
		}
		if item.ExclusionReason != want {
			t.Errorf("item %q: expected reason %q, got %q", item.Description, want, item.ExclusionReason)
		}
	}
	if claim.TotalClaimValue != 0 {
		t.Errorf("expected total 0 for fully excluded claim, got %.2f", claim.TotalClaimValue)
	}
}

func TestAssembleClaim_CategoryExclusion(t *testing.T) {
	policy := poldomain.Policy{Exclusions: []string{"jewelry"}}
	incident := Incident{
		IncidentType: "Theft",
		DateOfLoss:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	master := []invdomain.Item{
		testItem("Necklace", "Fine Jewelry", 3000),
		testItem("Laptop", "Electronics", 900),
	}

	claim, err := AssembleClaim(master, policy, incident, newFakeIDs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claim.Items[0].Status != ItemExcluded {
		t.Fatalf("expected jewelry item excluded, got %s", claim.Items[0].Status)
	}
	wantReason := "Category 'Fine Jewelry' is listed in policy exclusions."
	if claim.Items[0].ExclusionReason != wantReason {
		t.Errorf("expected reason %q, got %q", wantReason, claim.Items[0].ExclusionReason)
	}
	if claim.Items[1].Status != ItemIncluded {
		t.Errorf("expected electronics item included, got %s", claim.Items[1].Status)
	}
	if claim.TotalClaimValue != 900 {
		t.Errorf("expected total 900, got %.2f", claim.TotalClaimValue)
	}
}

func TestAssembleClaim_TemporalAndPlausibilityDrops(t *testing.T) {
	dateOfLoss := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	incident := Incident{IncidentType: "Fire", DateOfLoss: dateOfLoss}

	afterLoss := testItem("New TV", "Electronics", 1500)
	afterLoss.PurchaseDate = ptrTime(dateOfLoss.AddDate(0, 1, 0))

	archived := testItem("Old Chair", "Furniture", 100)
	archived.Status = invdomain.StatusArchived

	rejected := testItem("Unknown Box", "Misc", 50)
	rejected.Status = invdomain.StatusRejected

	onDate := testItem("Bookshelf", "Furniture", 200)
	onDate.PurchaseDate = ptrTime(dateOfLoss)

	noDate := testItem("Lamp", "Furniture", 80)

	master := []invdomain.Item{afterLoss, archived, rejected, onDate, noDate}

	claim, err := AssembleClaim(master, poldomain.Policy{}, incident, newFakeIDs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claim.Items) != 2 {
		t.Fatalf("expected 2 surviving items, got %d", len(claim.Items))
	}
	for _, item := range claim.Items {
		if item.Status != ItemIncluded {
			t.Errorf("item %q: expected included, got %s", item.Description, item.Status)
		}
	}
	if claim.TotalClaimValue != 280 {
		t.Errorf("expected total 280, got %.2f", claim.TotalClaimValue)
	}
}

func TestAssembleClaim_SchedulePositions(t *testing.T) {
	dateOfLoss := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	incident := Incident{IncidentType: "Fire", DateOfLoss: dateOfLoss}

	dropped := testItem("New TV", "Electronics", 1500)
	dropped.PurchaseDate = ptrTime(dateOfLoss.AddDate(0, 1, 0))

	master := []invdomain.Item{
		testItem("Sofa", "Furniture", 900),
		dropped,
		testItem("Lamp", "Furniture", 80),
		testItem("Bookshelf", "Furniture", 200),
	}

	claim, err := AssembleClaim(master, poldomain.Policy{}, incident, newFakeIDs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claim.Items) != 3 {
		t.Fatalf("expected 3 surviving items, got %d", len(claim.Items))
	}
	wantOrder := []string{"Sofa", "Lamp", "Bookshelf"}
	for i, item := range claim.Items {
		if item.Position != i {
			t.Errorf("item %d: position = %d, want %d", i, item.Position, i)
		}
		if !strings.Contains(item.Description, wantOrder[i]) {
			t.Errorf("item %d: description %q, want item %q", i, item.Description, wantOrder[i])
		}
	}
}

func TestAssembleClaim_SubLimitFlagging(t *testing.T) {
	policy := poldomain.Policy{
		Coverage: []poldomain.CoverageLimit{
			{Category: "Personal Property", Limit: 50000, Type: poldomain.CoverageMain},
			{Category: "Jewelry", Limit: 1000, Type: poldomain.CoverageSubLimit},
		},
	}
	incident := Incident{
		IncidentType: "Theft",
		DateOfLoss:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	over := testItem("Gold Watch", "Jewelry & Watches", 0)
	over.ReplacementValue = ptrFloat(1500)
	under := testItem("Silver Ring", "Jewelry & Watches", 400)

	claim, err := AssembleClaim([]invdomain.Item{over, under}, policy, incident, newFakeIDs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flagged := claim.Items[0]
	if flagged.Status != ItemFlagged {
		t.Fatalf("expected over-cap item flagged, got %s", flagged.Status)
	}
	if !strings.Contains(flagged.PolicyNotes, "Policy Sub-Limit: Jewelry is capped at $1000.00.") {
		t.Errorf("expected sub-limit note, got %q", flagged.PolicyNotes)
	}
	if !strings.Contains(flagged.PolicyNotes, "Item value ($1500.00) exceeds category cap.") {
		t.Errorf("expected cap-exceeded clause, got %q", flagged.PolicyNotes)
	}
	if flagged.ValuationMethod != ValuationRCV {
		t.Errorf("expected RCV valuation, got %s", flagged.ValuationMethod)
	}

	included := claim.Items[1]
	if included.Status != ItemIncluded {
		t.Fatalf("expected under-cap item included, got %s", included.Status)
	}
	if !strings.Contains(included.PolicyNotes, "capped at $1000.00") {
		t.Errorf("expected informational note on matched item, got %q", included.PolicyNotes)
	}
	if included.ValuationMethod != ValuationACV {
		t.Errorf("expected ACV valuation, got %s", included.ValuationMethod)
	}

	// Flagged items still count toward the total.
	if claim.TotalClaimValue != 1900 {
		t.Errorf("expected total 1900, got %.2f", claim.TotalClaimValue)
	}
}

func TestAssembleClaim_TotalInvariant(t *testing.T) {
	policy := poldomain.Policy{Exclusions: []string{"electronics"}}
	incident := Incident{
		IncidentType: "Fire",
		DateOfLoss:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	master := []invdomain.Item{
		testItem("Laptop", "Electronics", 900),
		testItem("Sofa", "Furniture", 1200),
		testItem("Desk", "Furniture", 300),
	}

	claim, err := AssembleClaim(master, policy, incident, newFakeIDs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var want float64
	for _, item := range claim.Items {
		if item.Counts() {
			want += item.ClaimedValue
		}
	}
	if claim.TotalClaimValue != want {
		t.Fatalf("total %.2f drifted from item sum %.2f", claim.TotalClaimValue, want)
	}

	// Recomputing after a status edit restores the invariant.
	claim.Items[1].Status = ItemExcluded
	claim.RecalculateTotal()
	if claim.TotalClaimValue != 300 {
		t.Errorf("expected recomputed total 300, got %.2f", claim.TotalClaimValue)
	}
}

func TestAssembleClaim_NameAndDefaults(t *testing.T) {
	ids := newFakeIDs()
	incident := Incident{
		IncidentType: "House Fire",
		DateOfLoss:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	item := testItem("Espresso Machine", "Appliances", 650)
	item.Brand = "Breville"
	item.Model = "BES870"
	item.Description = "Stainless steel espresso machine. Bought at a local shop."

	claim, err := AssembleClaim([]invdomain.Item{item}, poldomain.Policy{}, incident, ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claim.Name != "House Fire Claim - 2025-03-15" {
		t.Errorf("unexpected claim name %q", claim.Name)
	}
	if claim.Stage != StageIncident {
		t.Errorf("expected initial stage Incident, got %s", claim.Stage)
	}
	if claim.Status != ClaimDraft {
		t.Errorf("expected draft status, got %s", claim.Status)
	}

	ci := claim.Items[0]
	if ci.NarrativeTag != DefaultNarrativeTag {
		t.Errorf("expected narrative tag %q, got %q", DefaultNarrativeTag, ci.NarrativeTag)
	}
	if ci.Description != "Breville BES870 Espresso Machine - Stainless steel espresso machine" {
		t.Errorf("unexpected description %q", ci.Description)
	}
}

func TestStage_CanAdvanceTo(t *testing.T) {
	tests := []struct {
		from, to Stage
		want     bool
	}{
		{StageIncident, StageInventory, true},
		{StageIncident, StageSubmitted, true},
		{StageReview, StageValuation, false},
		{StageSubmitted, StageSubmitted, false},
		{Stage("bogus"), StageReview, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanAdvanceTo(tt.to); got != tt.want {
			t.Errorf("CanAdvanceTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
