// Package repository persists claims and their item snapshots in PostgreSQL.
// Claim assembly and item edits run in transactions so the cached claim total
// never drifts from the sum of included and flagged items.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"claimdesk_backend/internal/claims/domain"
	"claimdesk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	claimNotFoundMessage     = "claim not found"
	claimItemNotFoundMessage = "claim item not found"
)

// ClaimSummary is the list projection of a claim.
type ClaimSummary struct {
	ID              uuid.UUID
	Name            string
	Status          domain.ClaimStatus
	Stage           domain.Stage
	IncidentType    string
	TotalClaimValue float64
	ItemCount       int
	GeneratedAt     string
}

// Repository defines persistence operations for claims.
type Repository interface {
	Create(ctx context.Context, claim domain.ActiveClaim) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.ActiveClaim, error)
	List(ctx context.Context) ([]ClaimSummary, error)
	UpdateIncident(ctx context.Context, claim domain.ActiveClaim) error
	UpdateItem(ctx context.Context, claimID uuid.UUID, item domain.ClaimItem) (domain.ActiveClaim, error)
	SetStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ClaimStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new claims repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a claim and all of its item snapshots in one transaction.
func (r *Repo) Create(ctx context.Context, claim domain.ActiveClaim) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create claim: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var displacementStart, displacementEnd interface{}
	if claim.Incident.DisplacementRange != nil {
		displacementStart = claim.Incident.DisplacementRange.Start
		displacementEnd = claim.Incident.DisplacementRange.End
	}

	query := `
		INSERT INTO claims
			(id, name, status, stage, policy_id, generated_at, total_claim_value,
			 incident_name, incident_type, date_of_loss, location, police_report,
			 incident_description, displacement_start, displacement_end, fair_rental_value_per_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = tx.Exec(ctx, query,
		claim.ID, claim.Name, claim.Status, claim.Stage, claim.PolicyID, claim.GeneratedAt,
		claim.TotalClaimValue, claim.Incident.Name, claim.Incident.IncidentType,
		claim.Incident.DateOfLoss, claim.Incident.Location, claim.Incident.PoliceReport,
		claim.Incident.Description, displacementStart, displacementEnd,
		claim.Incident.FairRentalValuePerDay,
	)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}

	itemQuery := `
		INSERT INTO claim_items
			(id, claim_id, master_item_id, position, description, category, claimed_value,
			 valuation_method, narrative_tag, status, exclusion_reason, policy_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	for _, item := range claim.Items {
		_, err = tx.Exec(ctx, itemQuery,
			item.ID, claim.ID, item.MasterItemID, item.Position, item.Description, item.Category,
			item.ClaimedValue, item.ValuationMethod, item.NarrativeTag,
			item.Status, item.ExclusionReason, item.PolicyNotes,
		)
		if err != nil {
			return fmt.Errorf("insert claim item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create claim: %w", err)
	}
	return nil
}

// GetByID retrieves a claim with all of its items.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.ActiveClaim, error) {
	return getClaim(ctx, r.pool, id)
}

// List retrieves claim summaries, newest first.
func (r *Repo) List(ctx context.Context) ([]ClaimSummary, error) {
	query := `
		SELECT c.id, c.name, c.status, c.stage, c.incident_type, c.total_claim_value,
			(SELECT COUNT(*) FROM claim_items ci WHERE ci.claim_id = c.id),
			to_char(c.generated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM claims c
		ORDER BY c.generated_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	var summaries []ClaimSummary
	for rows.Next() {
		var s ClaimSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Status, &s.Stage, &s.IncidentType,
			&s.TotalClaimValue, &s.ItemCount, &s.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan claim summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}
	return summaries, nil
}

// UpdateIncident overwrites a claim's incident fields.
func (r *Repo) UpdateIncident(ctx context.Context, claim domain.ActiveClaim) error {
	var displacementStart, displacementEnd interface{}
	if claim.Incident.DisplacementRange != nil {
		displacementStart = claim.Incident.DisplacementRange.Start
		displacementEnd = claim.Incident.DisplacementRange.End
	}

	query := `
		UPDATE claims
		SET incident_name = $2, incident_type = $3, location = $4, police_report = $5,
			incident_description = $6, displacement_start = $7, displacement_end = $8,
			fair_rental_value_per_day = $9, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		claim.ID, claim.Incident.Name, claim.Incident.IncidentType, claim.Incident.Location,
		claim.Incident.PoliceReport, claim.Incident.Description,
		displacementStart, displacementEnd, claim.Incident.FairRentalValuePerDay,
	)
	if err != nil {
		return fmt.Errorf("update claim incident: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(claimNotFoundMessage)
	}
	return nil
}

// UpdateItem overwrites a claim item and recomputes the claim total in the
// same transaction, then returns the reloaded claim.
func (r *Repo) UpdateItem(ctx context.Context, claimID uuid.UUID, item domain.ClaimItem) (domain.ActiveClaim, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.ActiveClaim{}, fmt.Errorf("begin update claim item: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE claim_items
		SET description = $3, claimed_value = $4, narrative_tag = $5,
			status = $6, exclusion_reason = $7
		WHERE id = $1 AND claim_id = $2`

	tag, err := tx.Exec(ctx, query,
		item.ID, claimID, item.Description, item.ClaimedValue,
		item.NarrativeTag, item.Status, item.ExclusionReason,
	)
	if err != nil {
		return domain.ActiveClaim{}, fmt.Errorf("update claim item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ActiveClaim{}, apperr.NotFound(claimItemNotFoundMessage)
	}

	// Recompute the cached total from the sum of truth.
	recompute := `
		UPDATE claims
		SET total_claim_value = COALESCE((
			SELECT SUM(claimed_value) FROM claim_items
			WHERE claim_id = $1 AND status IN ('included', 'flagged')
		), 0), updated_at = now()
		WHERE id = $1`
	if _, err := tx.Exec(ctx, recompute, claimID); err != nil {
		return domain.ActiveClaim{}, fmt.Errorf("recompute claim total: %w", err)
	}

	claim, err := getClaim(ctx, tx, claimID)
	if err != nil {
		return domain.ActiveClaim{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ActiveClaim{}, fmt.Errorf("commit update claim item: %w", err)
	}
	return claim, nil
}

// SetStage moves a claim to a new stage.
func (r *Repo) SetStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE claims SET stage = $2, updated_at = now() WHERE id = $1`, id, stage)
	if err != nil {
		return fmt.Errorf("set claim stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(claimNotFoundMessage)
	}
	return nil
}

// SetStatus updates a claim's lifecycle status.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.ClaimStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE claims SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set claim status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(claimNotFoundMessage)
	}
	return nil
}

// Delete removes a claim and its items (cascade).
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM claims WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(claimNotFoundMessage)
	}
	return nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func getClaim(ctx context.Context, q querier, id uuid.UUID) (domain.ActiveClaim, error) {
	query := `
		SELECT id, name, status, stage, policy_id, generated_at, total_claim_value,
			incident_name, incident_type, date_of_loss, location, police_report,
			incident_description, displacement_start, displacement_end, fair_rental_value_per_day
		FROM claims WHERE id = $1`

	var claim domain.ActiveClaim
	var displacementStart, displacementEnd *time.Time
	err := q.QueryRow(ctx, query, id).Scan(
		&claim.ID, &claim.Name, &claim.Status, &claim.Stage, &claim.PolicyID,
		&claim.GeneratedAt, &claim.TotalClaimValue,
		&claim.Incident.Name, &claim.Incident.IncidentType, &claim.Incident.DateOfLoss,
		&claim.Incident.Location, &claim.Incident.PoliceReport, &claim.Incident.Description,
		&displacementStart, &displacementEnd, &claim.Incident.FairRentalValuePerDay,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ActiveClaim{}, apperr.NotFound(claimNotFoundMessage)
		}
		return domain.ActiveClaim{}, fmt.Errorf("get claim: %w", err)
	}

	if displacementStart != nil && displacementEnd != nil {
		claim.Incident.DisplacementRange = &domain.DateRange{
			Start: *displacementStart,
			End:   *displacementEnd,
		}
	}

	itemQuery := `
		SELECT id, master_item_id, position, description, category, claimed_value,
			valuation_method, narrative_tag, status, exclusion_reason, policy_notes
		FROM claim_items
		WHERE claim_id = $1
		ORDER BY position ASC`

	rows, err := q.Query(ctx, itemQuery, id)
	if err != nil {
		return domain.ActiveClaim{}, fmt.Errorf("list claim items: %w", err)
	}
	defer rows.Close()

	claim.Items = []domain.ClaimItem{}
	for rows.Next() {
		var item domain.ClaimItem
		if err := rows.Scan(&item.ID, &item.MasterItemID, &item.Position, &item.Description, &item.Category,
			&item.ClaimedValue, &item.ValuationMethod, &item.NarrativeTag,
			&item.Status, &item.ExclusionReason, &item.PolicyNotes); err != nil {
			return domain.ActiveClaim{}, fmt.Errorf("scan claim item: %w", err)
		}
		claim.Items = append(claim.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.ActiveClaim{}, fmt.Errorf("iterate claim items: %w", err)
	}
	return claim, nil
}
