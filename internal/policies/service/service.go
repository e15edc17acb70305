// Package service implements business logic for the policies module.
package service

import (
	"context"
	"time"

	"claimdesk_backend/internal/policies/domain"
	"claimdesk_backend/internal/policies/repository"
	"claimdesk_backend/internal/policies/transport"
	"claimdesk_backend/platform/apperr"
	"claimdesk_backend/platform/logger"

	"github.com/google/uuid"
)

// Service provides business logic for policies.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new policies service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create inserts a new policy. The first policy created becomes active.
func (s *Service) Create(ctx context.Context, req transport.CreatePolicyRequest) (transport.PolicyResponse, error) {
	if !req.ExpirationDate.After(req.EffectiveDate) {
		return transport.PolicyResponse{}, apperr.Validation("expiration date must be after effective date")
	}
	if err := validateCoverage(req.Coverage); err != nil {
		return transport.PolicyResponse{}, err
	}

	_, err := s.repo.GetActive(ctx)
	isFirst := apperr.Is(err, apperr.KindNotFound)

	p := domain.Policy{
		ID:                   uuid.New(),
		Provider:             req.Provider,
		PolicyNumber:         req.PolicyNumber,
		PolicyHolder:         req.PolicyHolder,
		EffectiveDate:        req.EffectiveDate,
		ExpirationDate:       req.ExpirationDate,
		Deductible:           req.Deductible,
		CoverageDLimit:       req.CoverageDLimit,
		LossSettlementMethod: domain.SettlementMethod(req.LossSettlementMethod),
		Coverage:             toCoverage(req.Coverage),
		Exclusions:           req.Exclusions,
		IsActive:             isFirst,
	}
	if p.Exclusions == nil {
		p.Exclusions = []string{}
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return transport.PolicyResponse{}, err
	}
	return toResponse(created), nil
}

// GetByID retrieves a policy.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.PolicyResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PolicyResponse{}, err
	}
	return toResponse(p), nil
}

// GetActive retrieves the active policy.
func (s *Service) GetActive(ctx context.Context) (transport.PolicyResponse, error) {
	p, err := s.repo.GetActive(ctx)
	if err != nil {
		return transport.PolicyResponse{}, err
	}
	return toResponse(p), nil
}

// ActivePolicy returns the active policy as a domain value for the claim engine.
func (s *Service) ActivePolicy(ctx context.Context) (domain.Policy, error) {
	return s.repo.GetActive(ctx)
}

// PolicyByID returns a policy as a domain value for the claim engine.
func (s *Service) PolicyByID(ctx context.Context, id uuid.UUID) (domain.Policy, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all policies.
func (s *Service) List(ctx context.Context) (transport.PolicyListResponse, error) {
	policies, err := s.repo.List(ctx)
	if err != nil {
		return transport.PolicyListResponse{}, err
	}

	responses := make([]transport.PolicyResponse, len(policies))
	for i, p := range policies {
		responses[i] = toResponse(p)
	}
	return transport.PolicyListResponse{Policies: responses, Total: len(responses)}, nil
}

// Update applies a partial update to a policy.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdatePolicyRequest) (transport.PolicyResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PolicyResponse{}, err
	}

	if req.Provider != nil {
		p.Provider = *req.Provider
	}
	if req.PolicyNumber != nil {
		p.PolicyNumber = *req.PolicyNumber
	}
	if req.PolicyHolder != nil {
		p.PolicyHolder = *req.PolicyHolder
	}
	if req.EffectiveDate != nil {
		p.EffectiveDate = *req.EffectiveDate
	}
	if req.ExpirationDate != nil {
		p.ExpirationDate = *req.ExpirationDate
	}
	if req.Deductible != nil {
		p.Deductible = *req.Deductible
	}
	if req.CoverageDLimit != nil {
		p.CoverageDLimit = req.CoverageDLimit
	}
	if req.LossSettlementMethod != nil {
		p.LossSettlementMethod = domain.SettlementMethod(*req.LossSettlementMethod)
	}
	if req.Coverage != nil {
		if err := validateCoverage(req.Coverage); err != nil {
			return transport.PolicyResponse{}, err
		}
		p.Coverage = toCoverage(req.Coverage)
	}
	if req.Exclusions != nil {
		p.Exclusions = req.Exclusions
	}

	if !p.ExpirationDate.After(p.EffectiveDate) {
		return transport.PolicyResponse{}, apperr.Validation("expiration date must be after effective date")
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return transport.PolicyResponse{}, err
	}
	return toResponse(updated), nil
}

// Delete removes a policy. The active policy cannot be deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.IsActive {
		return apperr.Conflict("cannot delete the active policy")
	}
	return s.repo.Delete(ctx, id)
}

// Activate switches the active policy.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (transport.PolicyResponse, error) {
	p, err := s.repo.Activate(ctx, id)
	if err != nil {
		return transport.PolicyResponse{}, err
	}
	s.log.Info("policy activated", "policyId", p.ID.String(), "provider", p.Provider)
	return toResponse(p), nil
}

// validateCoverage enforces at most one main coverage entry.
func validateCoverage(coverage []transport.CoverageLimitDTO) error {
	mains := 0
	for _, c := range coverage {
		if c.Type == string(domain.CoverageMain) {
			mains++
		}
	}
	if mains > 1 {
		return apperr.Validation("a policy can have at most one main coverage limit")
	}
	return nil
}

func toCoverage(dtos []transport.CoverageLimitDTO) []domain.CoverageLimit {
	coverage := make([]domain.CoverageLimit, len(dtos))
	for i, c := range dtos {
		coverage[i] = domain.CoverageLimit{
			Category: c.Category,
			Limit:    c.Limit,
			Type:     domain.CoverageType(c.Type),
		}
	}
	return coverage
}

func toResponse(p domain.Policy) transport.PolicyResponse {
	coverage := make([]transport.CoverageLimitDTO, len(p.Coverage))
	for i, c := range p.Coverage {
		coverage[i] = transport.CoverageLimitDTO{
			Category: c.Category,
			Limit:    c.Limit,
			Type:     string(c.Type),
		}
	}

	return transport.PolicyResponse{
		ID:                   p.ID.String(),
		Provider:             p.Provider,
		PolicyNumber:         p.PolicyNumber,
		PolicyHolder:         p.PolicyHolder,
		EffectiveDate:        p.EffectiveDate.Format(time.RFC3339),
		ExpirationDate:       p.ExpirationDate.Format(time.RFC3339),
		Deductible:           p.Deductible,
		CoverageDLimit:       p.CoverageDLimit,
		LossSettlementMethod: string(p.LossSettlementMethod),
		Coverage:             coverage,
		Exclusions:           p.Exclusions,
		IsActive:             p.IsActive,
		CreatedAt:            p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            p.UpdatedAt.Format(time.RFC3339),
	}
}
