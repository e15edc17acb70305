package notification

import (
	"strings"
	"testing"
)

func TestRenderClaimFinalizedTemplate(t *testing.T) {
	content, err := renderEmailTemplate("claim_finalized.html", ClaimFinalizedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Claim submitted",
			Heading: "Claim submitted",
		},
		ClaimName:      "House Fire Claim - 2025-03-15",
		IncidentType:   "Fire",
		ItemCount:      12,
		TotalFormatted: formatCurrencyUSD(18450.75),
	})
	if err != nil {
		t.Fatalf("renderEmailTemplate returned error: %v", err)
	}

	for _, want := range []string{
		"House Fire Claim - 2025-03-15",
		"Fire",
		"$18450.75",
		"Claim submitted",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}
}

func TestRenderClaimAssembledTemplate(t *testing.T) {
	content, err := renderEmailTemplate("claim_assembled.html", ClaimAssembledEmailData{
		baseEmailData: baseEmailData{
			Title:   "Claim draft ready",
			Heading: "Claim draft ready",
		},
		ClaimName:      "Burglary Claim - 2025-06-02",
		IncidentType:   "Burglary",
		ItemCount:      4,
		TotalFormatted: formatCurrencyUSD(3200),
	})
	if err != nil {
		t.Fatalf("renderEmailTemplate returned error: %v", err)
	}
	if !strings.Contains(content, "Burglary Claim - 2025-06-02") {
		t.Error("rendered email missing claim name")
	}
	if !strings.Contains(content, "$3200.00") {
		t.Error("rendered email missing formatted total")
	}
}
