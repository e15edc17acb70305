// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"claimdesk_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Inventory Domain Events
// =============================================================================

// InventoryItemCreated is published when a new master inventory item is created.
type InventoryItemCreated struct {
	BaseEvent
	ItemID   uuid.UUID `json:"itemId"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Status   string    `json:"status"`
}

func (e InventoryItemCreated) EventName() string { return "inventory.item.created" }

// EvidenceAttached is published when an evidence record is registered on an item.
type EvidenceAttached struct {
	BaseEvent
	ItemID     uuid.UUID `json:"itemId"`
	EvidenceID uuid.UUID `json:"evidenceId"`
	Kind       string    `json:"kind"`
	FileName   string    `json:"fileName"`
}

func (e EvidenceAttached) EventName() string { return "inventory.evidence.attached" }

// =============================================================================
// Claims Domain Events
// =============================================================================

// ClaimAssembled is published when a new claim is assembled from the master
// inventory. The tasks module seeds the incident checklist from it.
type ClaimAssembled struct {
	BaseEvent
	ClaimID      uuid.UUID `json:"claimId"`
	PolicyID     uuid.UUID `json:"policyId"`
	Name         string    `json:"name"`
	IncidentType string    `json:"incidentType"`
	ItemCount    int       `json:"itemCount"`
	TotalValue   float64   `json:"totalValue"`
}

func (e ClaimAssembled) EventName() string { return "claims.claim.assembled" }

// ClaimStageChanged is published when a claim advances to a later stage.
type ClaimStageChanged struct {
	BaseEvent
	ClaimID  uuid.UUID `json:"claimId"`
	OldStage string    `json:"oldStage"`
	NewStage string    `json:"newStage"`
}

func (e ClaimStageChanged) EventName() string { return "claims.stage.changed" }

// ClaimFinalized is published when a claim is locked for submission.
// The notification module emails the claim summary on it.
type ClaimFinalized struct {
	BaseEvent
	ClaimID      uuid.UUID `json:"claimId"`
	Name         string    `json:"name"`
	IncidentType string    `json:"incidentType"`
	TotalValue   float64   `json:"totalValue"`
	ItemCount    int       `json:"itemCount"`
}

func (e ClaimFinalized) EventName() string { return "claims.claim.finalized" }
