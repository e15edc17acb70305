package domain

import "strings"

// ActionPlan is the single next recommended step for a claim. The planner
// always collapses every outstanding issue into one highest-priority action.
type ActionPlan struct {
	Action string
	Stage  Stage
	Reason string
}

// NextAction evaluates a strict ordered decision list against the claim and
// its current metrics. The first matching rule wins; the procedure is
// deterministic and recomputed on every read, never stored.
func NextAction(claim ActiveClaim, metrics ClaimMetrics) ActionPlan {
	if claim.Status == ClaimFinalized {
		return ActionPlan{
			Action: "Monitor Carrier Response",
			Stage:  StageSubmitted,
			Reason: "The claim has been finalized and submitted to the carrier.",
		}
	}

	if strings.Contains(strings.ToLower(claim.Incident.IncidentType), "theft") && claim.Incident.PoliceReport == "" {
		return ActionPlan{
			Action: "Upload Police Report",
			Stage:  StageIncident,
			Reason: "Theft claims require a police report reference before submission.",
		}
	}

	if len(claim.Items) == 0 {
		return ActionPlan{
			Action: "Add Items to Claim",
			Stage:  StageInventory,
			Reason: "The claim has no items attached yet.",
		}
	}

	for _, item := range claim.Items {
		if item.Status == ItemIncluded && item.ClaimedValue == 0 {
			return ActionPlan{
				Action: "Set Item Values",
				Stage:  StageValuation,
				Reason: "One or more included items have no claimed value.",
			}
		}
	}

	if metrics.ProofCompleteness < 80 {
		return ActionPlan{
			Action: "Upload Missing Evidence",
			Stage:  StageEvidence,
			Reason: "Proof completeness is below 80 percent.",
		}
	}

	if metrics.HasIssue(IssueALEExceeded) {
		return ActionPlan{
			Action: "Review ALE Costs",
			Stage:  StageReview,
			Reason: "Additional living expenses exceed the loss-of-use coverage limit.",
		}
	}

	for _, item := range claim.Items {
		if item.Status == ItemFlagged {
			return ActionPlan{
				Action: "Review Sub-Limits",
				Stage:  StageReview,
				Reason: "One or more items exceed a policy sub-limit cap.",
			}
		}
	}

	return ActionPlan{
		Action: "Generate Claim Package",
		Stage:  StageReview,
		Reason: "All checks passed; the claim is ready to package.",
	}
}
