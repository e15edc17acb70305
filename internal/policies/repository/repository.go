// Package repository persists policies in PostgreSQL. Coverage entries are
// stored as a jsonb column, exclusions as a text array.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"claimdesk_backend/internal/policies/domain"
	"claimdesk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	policyNotFoundMessage   = "policy not found"
	noActivePolicyMessage   = "no active policy"
)

// Repository defines persistence operations for policies.
type Repository interface {
	Create(ctx context.Context, p domain.Policy) (domain.Policy, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Policy, error)
	GetActive(ctx context.Context) (domain.Policy, error)
	List(ctx context.Context) ([]domain.Policy, error)
	Update(ctx context.Context, p domain.Policy) (domain.Policy, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (domain.Policy, error)
}

const policyColumns = `id, provider, policy_number, policy_holder, effective_date,
		expiration_date, deductible, coverage_d_limit, loss_settlement_method,
		coverage, exclusions, is_active, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new policies repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new policy.
func (r *Repo) Create(ctx context.Context, p domain.Policy) (domain.Policy, error) {
	coverage, err := json.Marshal(p.Coverage)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("marshal coverage: %w", err)
	}

	query := `
		INSERT INTO policies
			(id, provider, policy_number, policy_holder, effective_date, expiration_date,
			 deductible, coverage_d_limit, loss_settlement_method, coverage, exclusions, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		p.ID, p.Provider, p.PolicyNumber, p.PolicyHolder, p.EffectiveDate, p.ExpirationDate,
		p.Deductible, p.CoverageDLimit, p.LossSettlementMethod, coverage, p.Exclusions, p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("create policy: %w", err)
	}
	return p, nil
}

// GetByID retrieves a policy by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id = $1`

	p, err := scanPolicy(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Policy{}, apperr.NotFound(policyNotFoundMessage)
		}
		return domain.Policy{}, fmt.Errorf("get policy: %w", err)
	}
	return p, nil
}

// GetActive retrieves the single active policy.
func (r *Repo) GetActive(ctx context.Context) (domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE is_active = true LIMIT 1`

	p, err := scanPolicy(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Policy{}, apperr.NotFound(noActivePolicyMessage)
		}
		return domain.Policy{}, fmt.Errorf("get active policy: %w", err)
	}
	return p, nil
}

// List retrieves all policies, active first, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies ORDER BY is_active DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var policies []domain.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate policies: %w", err)
	}
	return policies, nil
}

// Update overwrites a policy's mutable fields.
func (r *Repo) Update(ctx context.Context, p domain.Policy) (domain.Policy, error) {
	coverage, err := json.Marshal(p.Coverage)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("marshal coverage: %w", err)
	}

	query := `
		UPDATE policies
		SET provider = $2, policy_number = $3, policy_holder = $4, effective_date = $5,
			expiration_date = $6, deductible = $7, coverage_d_limit = $8,
			loss_settlement_method = $9, coverage = $10, exclusions = $11, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		p.ID, p.Provider, p.PolicyNumber, p.PolicyHolder, p.EffectiveDate, p.ExpirationDate,
		p.Deductible, p.CoverageDLimit, p.LossSettlementMethod, coverage, p.Exclusions,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Policy{}, apperr.NotFound(policyNotFoundMessage)
		}
		return domain.Policy{}, fmt.Errorf("update policy: %w", err)
	}
	return p, nil
}

// Delete removes a policy.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(policyNotFoundMessage)
	}
	return nil
}

// Activate marks one policy active and deactivates every other, in a single
// transaction. At most one policy is active at any time.
func (r *Repo) Activate(ctx context.Context, id uuid.UUID) (domain.Policy, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("begin activate policy: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `UPDATE policies SET is_active = false, updated_at = now() WHERE is_active = true AND id <> $1`, id); err != nil {
		return domain.Policy{}, fmt.Errorf("deactivate policies: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE policies SET is_active = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("activate policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Policy{}, apperr.NotFound(policyNotFoundMessage)
	}

	p, err := scanPolicy(tx.QueryRow(ctx, `SELECT `+policyColumns+` FROM policies WHERE id = $1`, id))
	if err != nil {
		return domain.Policy{}, fmt.Errorf("reload activated policy: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Policy{}, fmt.Errorf("commit activate policy: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row rowScanner) (domain.Policy, error) {
	var p domain.Policy
	var coverage []byte

	err := row.Scan(
		&p.ID, &p.Provider, &p.PolicyNumber, &p.PolicyHolder, &p.EffectiveDate,
		&p.ExpirationDate, &p.Deductible, &p.CoverageDLimit, &p.LossSettlementMethod,
		&coverage, &p.Exclusions, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Policy{}, err
	}

	if len(coverage) > 0 {
		if err := json.Unmarshal(coverage, &p.Coverage); err != nil {
			return domain.Policy{}, fmt.Errorf("unmarshal coverage: %w", err)
		}
	}
	if p.Coverage == nil {
		p.Coverage = []domain.CoverageLimit{}
	}
	if p.Exclusions == nil {
		p.Exclusions = []string{}
	}
	return p, nil
}
