// Package transport defines request/response DTOs for the policies module.
package transport

import "time"

// CoverageLimitDTO is a single coverage entry on a policy.
type CoverageLimitDTO struct {
	Category string  `json:"category" validate:"required,max=100"`
	Limit    float64 `json:"limit" validate:"gte=0"`
	Type     string  `json:"type" validate:"required,oneof=main sub-limit"`
}

// CreatePolicyRequest creates a new policy.
type CreatePolicyRequest struct {
	Provider             string             `json:"provider" validate:"required,max=200"`
	PolicyNumber         string             `json:"policyNumber" validate:"required,max=100"`
	PolicyHolder         string             `json:"policyHolder" validate:"max=200"`
	EffectiveDate        time.Time          `json:"effectiveDate" validate:"required"`
	ExpirationDate       time.Time          `json:"expirationDate" validate:"required"`
	Deductible           float64            `json:"deductible" validate:"gte=0"`
	CoverageDLimit       *float64           `json:"coverageDLimit" validate:"omitempty,gte=0"`
	LossSettlementMethod string             `json:"lossSettlementMethod" validate:"required,oneof=RCV ACV"`
	Coverage             []CoverageLimitDTO `json:"coverage" validate:"dive"`
	Exclusions           []string           `json:"exclusions" validate:"dive,max=200"`
}

// UpdatePolicyRequest applies a partial update to a policy.
type UpdatePolicyRequest struct {
	Provider             *string            `json:"provider" validate:"omitempty,max=200"`
	PolicyNumber         *string            `json:"policyNumber" validate:"omitempty,max=100"`
	PolicyHolder         *string            `json:"policyHolder" validate:"omitempty,max=200"`
	EffectiveDate        *time.Time         `json:"effectiveDate"`
	ExpirationDate       *time.Time         `json:"expirationDate"`
	Deductible           *float64           `json:"deductible" validate:"omitempty,gte=0"`
	CoverageDLimit       *float64           `json:"coverageDLimit" validate:"omitempty,gte=0"`
	LossSettlementMethod *string            `json:"lossSettlementMethod" validate:"omitempty,oneof=RCV ACV"`
	Coverage             []CoverageLimitDTO `json:"coverage" validate:"omitempty,dive"`
	Exclusions           []string           `json:"exclusions" validate:"omitempty,dive,max=200"`
}

// PolicyResponse is the API shape of a policy.
type PolicyResponse struct {
	ID                   string             `json:"id"`
	Provider             string             `json:"provider"`
	PolicyNumber         string             `json:"policyNumber"`
	PolicyHolder         string             `json:"policyHolder,omitempty"`
	EffectiveDate        string             `json:"effectiveDate"`
	ExpirationDate       string             `json:"expirationDate"`
	Deductible           float64            `json:"deductible"`
	CoverageDLimit       *float64           `json:"coverageDLimit,omitempty"`
	LossSettlementMethod string             `json:"lossSettlementMethod"`
	Coverage             []CoverageLimitDTO `json:"coverage"`
	Exclusions           []string           `json:"exclusions"`
	IsActive             bool               `json:"isActive"`
	CreatedAt            string             `json:"createdAt"`
	UpdatedAt            string             `json:"updatedAt"`
}

// PolicyListResponse wraps a policy listing.
type PolicyListResponse struct {
	Policies []PolicyResponse `json:"policies"`
	Total    int              `json:"total"`
}
