package domain

import "testing"

func TestNextAction_PriorityOrder(t *testing.T) {
	tests := []struct {
		name       string
		claim      ActiveClaim
		metrics    ClaimMetrics
		wantAction string
		wantStage  Stage
	}{
		{
			name:       "finalized claim wins over everything",
			claim:      ActiveClaim{Status: ClaimFinalized, Incident: Incident{IncidentType: "Theft"}},
			metrics:    ClaimMetrics{ProofCompleteness: 0},
			wantAction: "Monitor Carrier Response",
			wantStage:  StageSubmitted,
		},
		{
			name:       "theft without police report",
			claim:      ActiveClaim{Status: ClaimDraft, Incident: Incident{IncidentType: "Theft / Burglary"}},
			wantAction: "Upload Police Report",
			wantStage:  StageIncident,
		},
		{
			name: "theft with police report falls through to empty claim",
			claim: ActiveClaim{
				Status:   ClaimDraft,
				Incident: Incident{IncidentType: "Theft", PoliceReport: "RPT-2025-0042"},
			},
			wantAction: "Add Items to Claim",
			wantStage:  StageInventory,
		},
		{
			name:       "empty claim",
			claim:      ActiveClaim{Status: ClaimDraft, Incident: Incident{IncidentType: "Fire"}},
			wantAction: "Add Items to Claim",
			wantStage:  StageInventory,
		},
		{
			name: "included item with zero value",
			claim: ActiveClaim{
				Status:   ClaimDraft,
				Incident: Incident{IncidentType: "Fire"},
				Items: []ClaimItem{
					{Status: ItemIncluded, ClaimedValue: 0},
					{Status: ItemIncluded, ClaimedValue: 500},
				},
			},
			metrics:    ClaimMetrics{ProofCompleteness: 100},
			wantAction: "Set Item Values",
			wantStage:  StageValuation,
		},
		{
			name: "excluded zero-value item does not trigger valuation",
			claim: ActiveClaim{
				Status:   ClaimDraft,
				Incident: Incident{IncidentType: "Fire"},
				Items: []ClaimItem{
					{Status: ItemExcluded, ClaimedValue: 0},
					{Status: ItemIncluded, ClaimedValue: 500},
				},
			},
			metrics:    ClaimMetrics{ProofCompleteness: 40},
			wantAction: "Upload Missing Evidence",
			wantStage:  StageEvidence,
		},
		{
			name: "low proof completeness",
			claim: ActiveClaim{
				Status:   ClaimDraft,
				Incident: Incident{IncidentType: "Fire"},
				Items:    []ClaimItem{{Status: ItemIncluded, ClaimedValue: 500}},
			},
			metrics:    ClaimMetrics{ProofCompleteness: 79.9},
			wantAction: "Upload Missing Evidence",
			wantStage:  StageEvidence,
		},
		{
			name: "ale limit exceeded",
			claim: ActiveClaim{
				Status:   ClaimDraft,
				Incident: Incident{IncidentType: "Fire"},
				Items:    []ClaimItem{{Status: ItemIncluded, ClaimedValue: 500}},
			},
			metrics: ClaimMetrics{
				ProofCompleteness: 100,
				ActionItems:       []ActionItem{{Kind: IssueALEExceeded, Severity: SeverityHigh}},
			},
			wantAction: "Review ALE Costs",
			wantStage:  StageReview,
		},
		{
			name: "flagged item",
			claim: ActiveClaim{
				Status:   ClaimDraft,
				Incident: Incident{IncidentType: "Fire"},
				Items: []ClaimItem{
					{Status: ItemIncluded, ClaimedValue: 500},
					{Status: ItemFlagged, ClaimedValue: 1500},
				},
			},
			metrics:    ClaimMetrics{ProofCompleteness: 100},
			wantAction: "Review Sub-Limits",
			wantStage:  StageReview,
		},
		{
			name: "all clear",
			claim: ActiveClaim{
				Status:   ClaimDraft,
				Incident: Incident{IncidentType: "Fire"},
				Items:    []ClaimItem{{Status: ItemIncluded, ClaimedValue: 500}},
			},
			metrics:    ClaimMetrics{ProofCompleteness: 100},
			wantAction: "Generate Claim Package",
			wantStage:  StageReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextAction(tt.claim, tt.metrics)
			if got.Action != tt.wantAction {
				t.Errorf("action = %q, want %q", got.Action, tt.wantAction)
			}
			if got.Stage != tt.wantStage {
				t.Errorf("stage = %s, want %s", got.Stage, tt.wantStage)
			}
			if got.Reason == "" {
				t.Error("expected a non-empty reason")
			}
		})
	}
}

func TestNextAction_Idempotent(t *testing.T) {
	claim := ActiveClaim{
		Status:   ClaimDraft,
		Incident: Incident{IncidentType: "Water Leak"},
		Items:    []ClaimItem{{Status: ItemIncluded, ClaimedValue: 500}},
	}
	metrics := ClaimMetrics{ProofCompleteness: 50}

	first := NextAction(claim, metrics)
	second := NextAction(claim, metrics)
	if first != second {
		t.Fatalf("planner not idempotent: %+v vs %+v", first, second)
	}
}
