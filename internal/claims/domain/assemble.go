package domain

import (
	"errors"
	"fmt"
	"strings"

	invdomain "claimdesk_backend/internal/inventory/domain"
	poldomain "claimdesk_backend/internal/policies/domain"
)

// ErrMissingDateOfLoss is returned when a claim is assembled without a date
// of loss. This is the engine's single hard precondition; every other data
// absence is a legitimate empty result.
var ErrMissingDateOfLoss = errors.New("date of loss is required to assemble a claim")

// AssembleClaim builds a fresh claim schedule from the master inventory, the
// policy, and the incident. Each surviving master item becomes exactly one
// claim-item snapshot; temporally ineligible, archived, and rejected items
// are dropped before status assignment and produce no snapshot at all.
//
// The result is a new aggregate: inputs are never mutated.
func AssembleClaim(master []invdomain.Item, policy poldomain.Policy, incident Incident, ids IDProvider) (ActiveClaim, error) {
	if incident.DateOfLoss.IsZero() {
		return ActiveClaim{}, ErrMissingDateOfLoss
	}

	excludedIncident := incidentExcluded(incident.IncidentType, policy.Exclusions)
	subLimits := policy.SubLimits()

	items := make([]ClaimItem, 0, len(master))
	var total float64

	for _, masterItem := range master {
		if !temporallyEligible(masterItem, incident.DateOfLoss) {
			continue
		}
		if !physicallyPlausible(masterItem) {
			continue
		}

		item := ClaimItem{
			ID:           ids.NewID(),
			MasterItemID: masterItem.ID,
			Position:     len(items),
			Description:  claimDescription(masterItem),
			Category:     masterItem.Category,
			NarrativeTag: DefaultNarrativeTag,
			Status:       ItemIncluded,
		}
		item.ClaimedValue, item.ValuationMethod = claimedValue(masterItem)

		switch {
		case excludedIncident:
			item.Status = ItemExcluded
			item.ExclusionReason = incidentExclusionReason(incident.IncidentType)
		case categoryExcluded(masterItem.Category, policy.Exclusions):
			item.Status = ItemExcluded
			item.ExclusionReason = categoryExclusionReason(masterItem.Category)
		default:
			applySubLimit(&item, subLimits)
		}

		if item.Counts() {
			total += item.ClaimedValue
		}
		items = append(items, item)
	}

	now := ids.Now()
	return ActiveClaim{
		ID:              ids.NewID(),
		Name:            fmt.Sprintf("%s Claim - %s", incident.IncidentType, now.Format("2006-01-02")),
		Status:          ClaimDraft,
		PolicyID:        policy.ID,
		GeneratedAt:     now,
		TotalClaimValue: total,
		Stage:           StageIncident,
		Items:           items,
		Incident:        incident,
	}, nil
}

// claimedValue picks the claim value basis: replacement value when known,
// else original cost, else zero.
func claimedValue(item invdomain.Item) (float64, ValuationMethod) {
	if item.ReplacementValue != nil && *item.ReplacementValue > 0 {
		return *item.ReplacementValue, ValuationRCV
	}
	return item.OriginalCost, ValuationACV
}

// claimDescription produces the adjuster-facing schedule line: brand, model,
// and name, followed by the first sentence of the item description.
func claimDescription(item invdomain.Item) string {
	desc := strings.TrimSpace(strings.Join(nonEmpty(item.Brand, item.Model, item.Name), " "))
	if item.Description != "" {
		brief := strings.SplitN(item.Description, ".", 2)[0]
		desc += " - " + strings.TrimSpace(brief)
	}
	return desc
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}
