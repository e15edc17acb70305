// Package domain defines the claim checklist model.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskKind distinguishes document requirements from process steps.
type TaskKind string

const (
	KindDocument TaskKind = "document"
	KindTask     TaskKind = "task"
)

// IsKnownKind reports whether k is a valid task kind.
func IsKnownKind(k TaskKind) bool {
	return k == KindDocument || k == KindTask
}

// TaskSource records where a checklist entry came from.
type TaskSource string

const (
	SourceSeeded TaskSource = "seeded"
	SourceManual TaskSource = "manual"
)

// Task is one checklist entry, optionally tied to a claim.
type Task struct {
	ID        uuid.UUID
	ClaimID   *uuid.UUID
	Title     string
	Kind      TaskKind
	Done      bool
	Source    TaskSource
	CreatedAt time.Time
	UpdatedAt time.Time
}
