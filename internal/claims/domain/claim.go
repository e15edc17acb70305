// Package domain implements the claim eligibility and financial-projection
// engine. Every function in this package is pure: it takes immutable snapshots
// of the master inventory, the policy, and the incident, and returns new
// values. Identifier and clock access goes through the injected IDProvider.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stage is a phase in a claim's path toward submission. Stages only move
// forward; they never regress.
type Stage string

const (
	StageIncident  Stage = "Incident"
	StageInventory Stage = "Inventory"
	StageValuation Stage = "Valuation"
	StageEvidence  Stage = "Evidence"
	StageReview    Stage = "Review"
	StageSubmitted Stage = "Submitted"
)

var stageOrder = map[Stage]int{
	StageIncident:  0,
	StageInventory: 1,
	StageValuation: 2,
	StageEvidence:  3,
	StageReview:    4,
	StageSubmitted: 5,
}

// Index returns the ordinal position of the stage, or -1 for unknown stages.
func (s Stage) Index() int {
	idx, ok := stageOrder[s]
	if !ok {
		return -1
	}
	return idx
}

// IsKnownStage reports whether the stage is one of the defined phases.
func IsKnownStage(s Stage) bool {
	_, ok := stageOrder[s]
	return ok
}

// CanAdvanceTo reports whether moving from s to next is a forward move.
func (s Stage) CanAdvanceTo(next Stage) bool {
	return IsKnownStage(s) && IsKnownStage(next) && next.Index() > s.Index()
}

// ClaimStatus is the overall lifecycle state of a claim.
type ClaimStatus string

const (
	ClaimDraft     ClaimStatus = "draft"
	ClaimFinalized ClaimStatus = "finalized"
)

// ItemStatus is the eligibility status of an item within a claim schedule.
type ItemStatus string

const (
	ItemIncluded ItemStatus = "included"
	ItemExcluded ItemStatus = "excluded"
	ItemFlagged  ItemStatus = "flagged"
)

// ValuationMethod records which value basis a claim item uses.
type ValuationMethod string

const (
	ValuationRCV ValuationMethod = "RCV"
	ValuationACV ValuationMethod = "ACV"
)

// DefaultNarrativeTag is the editable placeholder state assigned to every
// newly assembled claim item. It is a default, not an inference.
const DefaultNarrativeTag = "Packed"

// ClaimItem is a snapshot of a master item inside one claim. After assembly
// it is independent of the master record: edits to either side never
// propagate to the other.
type ClaimItem struct {
	ID              uuid.UUID
	MasterItemID    uuid.UUID
	Position        int // schedule order, assigned once at assembly
	Description     string
	Category        string
	ClaimedValue    float64
	ValuationMethod ValuationMethod
	NarrativeTag    string
	Status          ItemStatus
	ExclusionReason string
	PolicyNotes     string
}

// Counts reports whether the item contributes to claim totals.
func (ci ClaimItem) Counts() bool {
	return ci.Status == ItemIncluded || ci.Status == ItemFlagged
}

// DateRange is an inclusive displacement period used for ALE.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Incident describes the loss event a claim is filed against.
type Incident struct {
	Name                  string
	IncidentType          string
	DateOfLoss            time.Time
	Location              string
	PoliceReport          string
	Description           string
	DisplacementRange     *DateRange
	FairRentalValuePerDay float64
}

// ActiveClaim aggregates the claim schedule for one incident.
type ActiveClaim struct {
	ID              uuid.UUID
	Name            string
	Status          ClaimStatus
	PolicyID        uuid.UUID
	GeneratedAt     time.Time
	TotalClaimValue float64
	Stage           Stage
	Items           []ClaimItem
	Incident        Incident
}

// RecalculateTotal recomputes the cached claim total from the item list.
// Callers must invoke it after any status or value change so the total never
// drifts from the sum of included and flagged items.
func (c *ActiveClaim) RecalculateTotal() {
	var total float64
	for _, item := range c.Items {
		if item.Counts() {
			total += item.ClaimedValue
		}
	}
	c.TotalClaimValue = total
}
