// Package domain provides core types for the policies bounded context.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// SettlementMethod is the loss settlement basis of a policy.
type SettlementMethod string

const (
	SettlementRCV SettlementMethod = "RCV"
	SettlementACV SettlementMethod = "ACV"
)

// CoverageType distinguishes the main personal-property limit from
// category-specific sub-limits.
type CoverageType string

const (
	CoverageMain     CoverageType = "main"
	CoverageSubLimit CoverageType = "sub-limit"
)

// CoverageLimit is a single coverage entry of a policy.
type CoverageLimit struct {
	Category string       `json:"category"`
	Limit    float64      `json:"limit"`
	Type     CoverageType `json:"type"`
}

// Policy is a parsed insurance policy. It is an immutable input to the claim
// engine; editing happens upstream through the policies module.
type Policy struct {
	ID                   uuid.UUID
	Provider             string
	PolicyNumber         string
	PolicyHolder         string
	EffectiveDate        time.Time
	ExpirationDate       time.Time
	Deductible           float64
	CoverageDLimit       *float64 // loss-of-use cap
	LossSettlementMethod SettlementMethod
	Coverage             []CoverageLimit
	Exclusions           []string
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// SubLimits returns the coverage entries tagged as sub-limits.
func (p Policy) SubLimits() []CoverageLimit {
	var subs []CoverageLimit
	for _, c := range p.Coverage {
		if c.Type == CoverageSubLimit {
			subs = append(subs, c)
		}
	}
	return subs
}

// MainLimit returns the first main coverage entry, or nil when the policy
// defines none.
func (p Policy) MainLimit() *CoverageLimit {
	for _, c := range p.Coverage {
		if c.Type == CoverageMain {
			limit := c
			return &limit
		}
	}
	return nil
}
