package domain

import "testing"

func TestRequirementsFor(t *testing.T) {
	tests := []struct {
		incidentType string
		wantFirstDoc string
	}{
		{"Theft", "Police report"},
		{"Burglary - forced entry", "Police report"},
		{"House Fire", "Fire marshal report"},
		{"Smoke damage from neighbor", "Fire marshal report"},
		{"Water Leak", "Plumber invoice"},
		{"Flood", "Plumber invoice"},
		{"FLOOD DAMAGE", "Plumber invoice"},
		{"Hail", "Proof-of-loss form"},
		{"", "Proof-of-loss form"},
	}

	for _, tt := range tests {
		t.Run(tt.incidentType, func(t *testing.T) {
			got := RequirementsFor(tt.incidentType)
			if len(got.RequiredDocuments) == 0 {
				t.Fatal("expected at least one required document")
			}
			if got.RequiredDocuments[0] != tt.wantFirstDoc {
				t.Errorf("first document = %q, want %q", got.RequiredDocuments[0], tt.wantFirstDoc)
			}
			if len(got.RecommendedTasks) == 0 {
				t.Error("expected at least one recommended task")
			}
		})
	}
}

func TestRequirementsFor_SingleBucket(t *testing.T) {
	// An incident mentioning both fire and water resolves to exactly one
	// bucket, never a merge. Fire precedes water in the catalog.
	got := RequirementsFor("Fire suppression water damage")
	if got.RequiredDocuments[0] != "Fire marshal report" {
		t.Fatalf("expected the fire bucket to win, got %q", got.RequiredDocuments[0])
	}
}
