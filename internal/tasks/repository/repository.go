// Package repository persists claim checklist tasks in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"

	"claimdesk_backend/internal/tasks/domain"
	"claimdesk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskNotFoundMessage = "task not found"

const taskColumns = `id, claim_id, title, kind, done, source, created_at, updated_at`

// ListParams filters the task list.
type ListParams struct {
	ClaimID *uuid.UUID
	Done    *bool
}

// Repository defines task persistence operations.
type Repository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	CreateBatch(ctx context.Context, tasks []domain.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error)
	List(ctx context.Context, params ListParams) ([]domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a single task.
func (r *Repo) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := `
		INSERT INTO claim_tasks (id, claim_id, title, kind, done, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		task.ID, task.ClaimID, task.Title, task.Kind, task.Done, task.Source,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// CreateBatch inserts the seeded checklist for a claim in one transaction.
func (r *Repo) CreateBatch(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO claim_tasks (id, claim_id, title, kind, done, source)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, task := range tasks {
		batch.Queue(query, task.ID, task.ClaimID, task.Title, task.Kind, task.Done, task.Source)
	}

	results := tx.SendBatch(ctx, batch)
	for range tasks {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("batch insert tasks: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close task batch: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a single task.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM claim_tasks WHERE id = $1`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, apperr.NotFound(taskNotFoundMessage)
		}
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// List retrieves tasks matching the filter, open items first, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM claim_tasks
		WHERE ($1::uuid IS NULL OR claim_id = $1)
			AND ($2::boolean IS NULL OR done = $2)
		ORDER BY done ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, params.ClaimID, params.Done)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// Update overwrites a task's mutable fields.
func (r *Repo) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := `
		UPDATE claim_tasks
		SET title = $2, done = $3, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, task.ID, task.Title, task.Done).
		Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, apperr.NotFound(taskNotFoundMessage)
		}
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM claim_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(taskNotFoundMessage)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID, &task.ClaimID, &task.Title, &task.Kind, &task.Done,
		&task.Source, &task.CreatedAt, &task.UpdatedAt,
	)
	return task, err
}
