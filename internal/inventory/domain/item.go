// Package domain provides core types for the master inventory bounded context.
// The master inventory is the source of truth: claim assembly takes snapshots
// of it and never writes back.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a master inventory item.
type Status string

const (
	StatusProcessing  Status = "processing"
	StatusNeedsReview Status = "needs-review"
	StatusActive      Status = "active"
	StatusClaimed     Status = "claimed"
	StatusArchived    Status = "archived"
	StatusError       Status = "error"
	StatusRejected    Status = "rejected"
)

var knownStatuses = map[Status]struct{}{
	StatusProcessing:  {},
	StatusNeedsReview: {},
	StatusActive:      {},
	StatusClaimed:     {},
	StatusArchived:    {},
	StatusError:       {},
	StatusRejected:    {},
}

// IsKnownStatus reports whether the status is one of the defined lifecycle states.
func IsKnownStatus(status Status) bool {
	_, ok := knownStatuses[status]
	return ok
}

// EvidenceKind is the media kind of an evidence attachment.
type EvidenceKind string

const (
	EvidenceImage    EvidenceKind = "image"
	EvidenceDocument EvidenceKind = "document"
)

// Evidence is a single attachment proving ownership, possession, or value
// of a master item. The binary lives in object storage; this record carries
// the file key.
type Evidence struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	Kind        EvidenceKind
	Purpose     string
	FileName    string
	ContentType string
	FileKey     string
	CreatedAt   time.Time
}

// Item is a master inventory record. Engine code treats it as an immutable
// snapshot: eligibility and valuation read it, nothing writes it.
type Item struct {
	ID               uuid.UUID
	Status           Status
	Name             string
	Description      string
	Category         string
	Brand            string
	Model            string
	SerialNumber     string
	OriginalCost     float64
	ReplacementValue *float64
	PurchaseDate     *time.Time
	Evidence         []Evidence
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasEvidenceKind reports whether the item carries at least one attachment
// of the given kind.
func (i Item) HasEvidenceKind(kind EvidenceKind) bool {
	for _, ev := range i.Evidence {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
