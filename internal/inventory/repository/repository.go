// Package repository persists master inventory items in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"

	"claimdesk_backend/internal/inventory/domain"
	"claimdesk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	itemNotFoundMessage     = "inventory item not found"
	evidenceNotFoundMessage = "evidence not found"
)

const itemColumns = `id, status, name, description, category, brand, model, serial_number,
		original_cost, replacement_value, purchase_date, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inventory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new inventory item.
func (r *Repo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	query := `
		INSERT INTO inventory_items
			(id, status, name, description, category, brand, model, serial_number,
			 original_cost, replacement_value, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.ID, item.Status, item.Name, item.Description, item.Category,
		item.Brand, item.Model, item.SerialNumber,
		item.OriginalCost, item.ReplacementValue, item.PurchaseDate,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.Item{}, fmt.Errorf("create inventory item: %w", err)
	}

	item.Evidence = []domain.Evidence{}
	return item, nil
}

// GetByID retrieves one item with its evidence attachments.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return domain.Item{}, fmt.Errorf("get inventory item: %w", err)
	}

	evidence, err := r.listEvidence(ctx, []uuid.UUID{id})
	if err != nil {
		return domain.Item{}, err
	}
	item.Evidence = evidence[id]
	if item.Evidence == nil {
		item.Evidence = []domain.Evidence{}
	}
	return item, nil
}

// List retrieves items matching the filter, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]domain.Item, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}
	var statusParam interface{}
	if params.Status != "" {
		statusParam = params.Status
	}
	var categoryParam interface{}
	if params.Category != "" {
		categoryParam = params.Category
	}

	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR category = $2)
			AND ($3::text IS NULL OR name ILIKE $3 OR description ILIKE $3 OR brand ILIKE $3)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, statusParam, categoryParam, searchParam)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	return r.attachEvidence(ctx, items)
}

// ListAll retrieves the entire master inventory with evidence, in insertion
// order. Claim assembly iterates this snapshot.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all inventory items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	return r.attachEvidence(ctx, items)
}

// Update overwrites an item's mutable fields.
func (r *Repo) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	query := `
		UPDATE inventory_items
		SET status = $2, name = $3, description = $4, category = $5, brand = $6,
			model = $7, serial_number = $8, original_cost = $9,
			replacement_value = $10, purchase_date = $11, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.ID, item.Status, item.Name, item.Description, item.Category,
		item.Brand, item.Model, item.SerialNumber,
		item.OriginalCost, item.ReplacementValue, item.PurchaseDate,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return domain.Item{}, fmt.Errorf("update inventory item: %w", err)
	}
	return item, nil
}

// Delete removes an item and its evidence records (cascade).
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMessage)
	}
	return nil
}

// AddEvidence inserts an evidence record for an item.
func (r *Repo) AddEvidence(ctx context.Context, ev domain.Evidence) (domain.Evidence, error) {
	query := `
		INSERT INTO item_evidence (id, item_id, kind, purpose, file_name, content_type, file_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		ev.ID, ev.ItemID, ev.Kind, ev.Purpose, ev.FileName, ev.ContentType, ev.FileKey,
	).Scan(&ev.CreatedAt)
	if err != nil {
		return domain.Evidence{}, fmt.Errorf("add evidence: %w", err)
	}
	return ev, nil
}

// GetEvidence retrieves a single evidence record scoped to an item.
func (r *Repo) GetEvidence(ctx context.Context, itemID, evidenceID uuid.UUID) (domain.Evidence, error) {
	query := `
		SELECT id, item_id, kind, purpose, file_name, content_type, file_key, created_at
		FROM item_evidence
		WHERE id = $1 AND item_id = $2`

	var ev domain.Evidence
	err := r.pool.QueryRow(ctx, query, evidenceID, itemID).Scan(
		&ev.ID, &ev.ItemID, &ev.Kind, &ev.Purpose, &ev.FileName, &ev.ContentType, &ev.FileKey, &ev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Evidence{}, apperr.NotFound(evidenceNotFoundMessage)
		}
		return domain.Evidence{}, fmt.Errorf("get evidence: %w", err)
	}
	return ev, nil
}

// DeleteEvidence removes an evidence record scoped to an item.
func (r *Repo) DeleteEvidence(ctx context.Context, itemID, evidenceID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM item_evidence WHERE id = $1 AND item_id = $2`, evidenceID, itemID)
	if err != nil {
		return fmt.Errorf("delete evidence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(evidenceNotFoundMessage)
	}
	return nil
}

func (r *Repo) attachEvidence(ctx context.Context, items []domain.Item) ([]domain.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	evidence, err := r.listEvidence(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Evidence = evidence[items[i].ID]
		if items[i].Evidence == nil {
			items[i].Evidence = []domain.Evidence{}
		}
	}
	return items, nil
}

func (r *Repo) listEvidence(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]domain.Evidence, error) {
	query := `
		SELECT id, item_id, kind, purpose, file_name, content_type, file_key, created_at
		FROM item_evidence
		WHERE item_id = ANY($1)
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.Evidence)
	for rows.Next() {
		var ev domain.Evidence
		if err := rows.Scan(&ev.ID, &ev.ItemID, &ev.Kind, &ev.Purpose, &ev.FileName, &ev.ContentType, &ev.FileKey, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		result[ev.ItemID] = append(result[ev.ItemID], ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence: %w", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID, &item.Status, &item.Name, &item.Description, &item.Category,
		&item.Brand, &item.Model, &item.SerialNumber,
		&item.OriginalCost, &item.ReplacementValue, &item.PurchaseDate,
		&item.CreatedAt, &item.UpdatedAt,
	)
	return item, err
}

func scanItems(rows pgx.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory items: %w", err)
	}
	return items, nil
}
