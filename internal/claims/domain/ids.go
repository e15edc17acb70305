package domain

import (
	"time"

	"github.com/google/uuid"
)

// IDProvider supplies identifiers and the current time to the assembler.
// Injecting it keeps assembly deterministic under test.
type IDProvider interface {
	NewID() uuid.UUID
	Now() time.Time
}

// SystemIDProvider is the production IDProvider backed by random UUIDs and
// the wall clock.
type SystemIDProvider struct{}

// NewID returns a random UUID.
func (SystemIDProvider) NewID() uuid.UUID { return uuid.New() }

// Now returns the current wall-clock time.
func (SystemIDProvider) Now() time.Time { return time.Now() }
