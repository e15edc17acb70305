package domain

import (
	"fmt"
	"math"

	invdomain "claimdesk_backend/internal/inventory/domain"
	poldomain "claimdesk_backend/internal/policies/domain"

	"github.com/google/uuid"
)

// Severity grades an action item.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Action item kinds raised by the metrics calculator.
const (
	IssueMissingPhoto     = "missing-photo"
	IssueMissingReceipt   = "missing-receipt"
	IssueSubLimitRisk     = "sub-limit-risk"
	IssueCoverageExceeded = "coverage-limit-exceeded"
	IssueALEExceeded      = "ale-limit-exceeded"
)

// receiptThreshold is the claimed value at or above which a missing receipt
// is worth flagging.
const receiptThreshold = 200.0

// ActionItem is a single outstanding issue discovered while computing metrics.
type ActionItem struct {
	Kind     string
	Severity Severity
	Message  string
	ItemID   uuid.UUID
}

// ClaimMetrics is the derived financial and readiness projection of a claim.
// It is ephemeral: recomputed on every read, never persisted.
type ClaimMetrics struct {
	GrossPropertyLoss float64
	Deductible        float64
	ALETotal          float64
	NetPayout         float64
	ProofCompleteness float64
	CoverageHealth    float64
	StrategyScore     int
	ActionItems       []ActionItem
}

// HasIssue reports whether any action item of the given kind was raised.
func (m ClaimMetrics) HasIssue(kind string) bool {
	for _, ai := range m.ActionItems {
		if ai.Kind == kind {
			return true
		}
	}
	return false
}

// ComputeMetrics derives the financial projection for a claim. The master
// inventory is consulted read-only to cross-reference evidence attachments.
// The function never mutates the claim.
func ComputeMetrics(claim ActiveClaim, policy poldomain.Policy, master []invdomain.Item) ClaimMetrics {
	byID := make(map[uuid.UUID]invdomain.Item, len(master))
	for _, item := range master {
		byID[item.ID] = item
	}

	metrics := ClaimMetrics{Deductible: policy.Deductible}

	var includedCount, provenCount int
	for _, item := range claim.Items {
		if !item.Counts() {
			continue
		}
		includedCount++
		metrics.GrossPropertyLoss += item.ClaimedValue

		masterItem, known := byID[item.MasterItemID]
		hasPhoto := known && masterItem.HasEvidenceKind(invdomain.EvidenceImage)
		hasReceipt := known && masterItem.HasEvidenceKind(invdomain.EvidenceDocument)
		if hasPhoto && hasReceipt {
			provenCount++
		}

		if !hasPhoto {
			metrics.ActionItems = append(metrics.ActionItems, ActionItem{
				Kind:     IssueMissingPhoto,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("'%s' has no photo evidence.", item.Description),
				ItemID:   item.ID,
			})
		}
		if item.ClaimedValue >= receiptThreshold && !hasReceipt {
			metrics.ActionItems = append(metrics.ActionItems, ActionItem{
				Kind:     IssueMissingReceipt,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("'%s' ($%.2f) has no receipt or document evidence.", item.Description, item.ClaimedValue),
				ItemID:   item.ID,
			})
		}
		if item.Status == ItemFlagged {
			metrics.ActionItems = append(metrics.ActionItems, ActionItem{
				Kind:     IssueSubLimitRisk,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("'%s' exceeds a policy sub-limit and may be capped.", item.Description),
				ItemID:   item.ID,
			})
		}
	}

	metrics.ALETotal = aleTotal(claim.Incident)
	metrics.NetPayout = math.Max(0, metrics.GrossPropertyLoss-policy.Deductible) + metrics.ALETotal

	if includedCount == 0 {
		metrics.ProofCompleteness = 100
	} else {
		metrics.ProofCompleteness = float64(provenCount) / float64(includedCount) * 100
	}

	mainLimit := policy.MainLimit()
	if mainLimit != nil && metrics.GrossPropertyLoss > mainLimit.Limit {
		metrics.ActionItems = append(metrics.ActionItems, ActionItem{
			Kind:     IssueCoverageExceeded,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("Gross property loss ($%.2f) exceeds the main coverage limit ($%.2f).", metrics.GrossPropertyLoss, mainLimit.Limit),
		})
	}
	if policy.CoverageDLimit != nil && metrics.ALETotal > *policy.CoverageDLimit {
		metrics.ActionItems = append(metrics.ActionItems, ActionItem{
			Kind:     IssueALEExceeded,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("ALE total ($%.2f) exceeds the loss-of-use limit ($%.2f).", metrics.ALETotal, *policy.CoverageDLimit),
		})
	}

	if mainLimit == nil || mainLimit.Limit <= 0 {
		metrics.CoverageHealth = 0
	} else {
		metrics.CoverageHealth = math.Min(100, math.Max(0, 100-metrics.GrossPropertyLoss/mainLimit.Limit*100))
	}

	metrics.StrategyScore = strategyScore(metrics.ProofCompleteness, metrics.NetPayout)

	return metrics
}

// aleTotal computes additional-living-expense exposure: the inclusive day
// count of the displacement range times the daily fair rental value. Either
// piece missing means zero.
func aleTotal(incident Incident) float64 {
	if incident.DisplacementRange == nil || incident.FairRentalValuePerDay <= 0 {
		return 0
	}
	r := incident.DisplacementRange
	days := math.Ceil(math.Abs(r.End.Sub(r.Start).Hours())/24) + 1
	return days * incident.FairRentalValuePerDay
}

// strategyScore is a fixed weighted composite of proof quality, payout
// viability, and a baseline policy-check component. The 80 constant stands in
// for a policy-compliance check this engine does not yet compute dynamically.
func strategyScore(proofCompleteness, netPayout float64) int {
	payoutViability := 0.0
	if netPayout > 0 {
		payoutViability = 100
	}
	return int(math.Round(proofCompleteness*0.5 + payoutViability*0.3 + 80*0.2))
}
