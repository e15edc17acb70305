package service

import (
	"context"
	"testing"
	"time"

	"claimdesk_backend/internal/events"
	"claimdesk_backend/internal/tasks/domain"
	"claimdesk_backend/internal/tasks/repository"
	"claimdesk_backend/internal/tasks/transport"
	"claimdesk_backend/platform/apperr"
	"claimdesk_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	tasks map[uuid.UUID]domain.Task
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: make(map[uuid.UUID]domain.Task)}
}

func (f *fakeRepo) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, tasks []domain.Task) error {
	for _, task := range tasks {
		if _, err := f.Create(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, apperr.NotFound("task not found")
	}
	return task, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListParams) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.tasks {
		if params.ClaimID != nil && (task.ClaimID == nil || *task.ClaimID != *params.ClaimID) {
			continue
		}
		if params.Done != nil && task.Done != *params.Done {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, task domain.Task) (domain.Task, error) {
	if _, ok := f.tasks[task.ID]; !ok {
		return domain.Task{}, apperr.NotFound("task not found")
	}
	task.UpdatedAt = time.Now()
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.tasks[id]; !ok {
		return apperr.NotFound("task not found")
	}
	delete(f.tasks, id)
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func TestSeedChecklist_TheftClaim(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("development"))
	bus := events.NewInMemoryBus(logger.New("development"))
	svc.RegisterHandlers(bus)

	claimID := uuid.New()
	err := bus.PublishSync(context.Background(), events.ClaimAssembled{
		BaseEvent:    events.NewBaseEvent(),
		ClaimID:      claimID,
		IncidentType: "Theft",
	})
	if err != nil {
		t.Fatalf("PublishSync returned error: %v", err)
	}

	seeded, err := repo.List(context.Background(), repository.ListParams{ClaimID: &claimID})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(seeded) == 0 {
		t.Fatal("expected seeded checklist entries")
	}

	documents := 0
	for _, task := range seeded {
		if task.Source != domain.SourceSeeded {
			t.Errorf("task %q source = %q, want seeded", task.Title, task.Source)
		}
		if task.Done {
			t.Errorf("task %q should start open", task.Title)
		}
		if task.Kind == domain.KindDocument {
			documents++
		}
	}
	if documents == 0 {
		t.Error("expected at least one document requirement")
	}

	foundPoliceReport := false
	for _, task := range seeded {
		if task.Title == "Police report" {
			foundPoliceReport = true
		}
	}
	if !foundPoliceReport {
		t.Error("theft checklist should include the police report document")
	}
}

func TestUpdate_TogglesDone(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, logger.New("development"))

	created, err := svc.Create(context.Background(), transport.CreateTaskRequest{
		Title: "Call the adjuster",
		Kind:  string(domain.KindTask),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	id, _ := uuid.Parse(created.ID)
	done := true
	updated, err := svc.Update(context.Background(), id, transport.UpdateTaskRequest{Done: &done})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.Done {
		t.Error("task should be done after toggle")
	}
	if updated.Source != string(domain.SourceManual) {
		t.Errorf("source = %q, want manual", updated.Source)
	}
}
