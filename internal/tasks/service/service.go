// Package service provides checklist task management. The incident checklist
// is seeded automatically when a claim is assembled; manual entries can be
// added, toggled, and removed alongside it.
package service

import (
	"context"
	"time"

	claimsdomain "claimdesk_backend/internal/claims/domain"
	"claimdesk_backend/internal/events"
	"claimdesk_backend/internal/tasks/domain"
	"claimdesk_backend/internal/tasks/repository"
	"claimdesk_backend/internal/tasks/transport"
	"claimdesk_backend/platform/apperr"
	"claimdesk_backend/platform/logger"

	"github.com/google/uuid"
)

// Service provides business logic for checklist tasks.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new task service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// RegisterHandlers subscribes the seeding handler on the event bus.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ClaimAssembled{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.ClaimAssembled)
		if !ok {
			return nil
		}
		return s.seedChecklist(ctx, evt)
	}))
}

// seedChecklist creates the incident document and task checklist for a new
// claim from the incident-type requirements catalog.
func (s *Service) seedChecklist(ctx context.Context, evt events.ClaimAssembled) error {
	reqs := claimsdomain.RequirementsFor(evt.IncidentType)

	claimID := evt.ClaimID
	tasks := make([]domain.Task, 0, len(reqs.RequiredDocuments)+len(reqs.RecommendedTasks))
	for _, doc := range reqs.RequiredDocuments {
		tasks = append(tasks, domain.Task{
			ID:      uuid.New(),
			ClaimID: &claimID,
			Title:   doc,
			Kind:    domain.KindDocument,
			Source:  domain.SourceSeeded,
		})
	}
	for _, step := range reqs.RecommendedTasks {
		tasks = append(tasks, domain.Task{
			ID:      uuid.New(),
			ClaimID: &claimID,
			Title:   step,
			Kind:    domain.KindTask,
			Source:  domain.SourceSeeded,
		})
	}

	if err := s.repo.CreateBatch(ctx, tasks); err != nil {
		s.log.Error("failed to seed claim checklist", "claimId", claimID.String(), "error", err)
		return err
	}
	s.log.Info("claim checklist seeded", "claimId", claimID.String(), "tasks", len(tasks))
	return nil
}

// Create adds a manual checklist entry.
func (s *Service) Create(ctx context.Context, req transport.CreateTaskRequest) (transport.TaskResponse, error) {
	task := domain.Task{
		ID:     uuid.New(),
		Title:  req.Title,
		Kind:   domain.TaskKind(req.Kind),
		Source: domain.SourceManual,
	}
	if req.ClaimID != "" {
		claimID, err := uuid.Parse(req.ClaimID)
		if err != nil {
			return transport.TaskResponse{}, apperr.Validation("invalid claim ID")
		}
		task.ClaimID = &claimID
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return transport.TaskResponse{}, err
	}
	return toResponse(created), nil
}

// List retrieves tasks matching the filter.
func (s *Service) List(ctx context.Context, req transport.ListTasksRequest) (transport.TaskListResponse, error) {
	var params repository.ListParams
	if req.ClaimID != "" {
		claimID, err := uuid.Parse(req.ClaimID)
		if err != nil {
			return transport.TaskListResponse{}, apperr.Validation("invalid claim ID")
		}
		params.ClaimID = &claimID
	}
	if req.Done != "" {
		done := req.Done == "true"
		params.Done = &done
	}

	tasks, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.TaskListResponse{}, err
	}

	responses := make([]transport.TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = toResponse(task)
	}
	return transport.TaskListResponse{Tasks: responses, Total: len(responses)}, nil
}

// Update renames or toggles a checklist entry.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateTaskRequest) (transport.TaskResponse, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.TaskResponse{}, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Done != nil {
		task.Done = *req.Done
	}

	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		return transport.TaskResponse{}, err
	}
	return toResponse(updated), nil
}

// Delete removes a checklist entry.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func toResponse(task domain.Task) transport.TaskResponse {
	resp := transport.TaskResponse{
		ID:        task.ID.String(),
		Title:     task.Title,
		Kind:      string(task.Kind),
		Done:      task.Done,
		Source:    string(task.Source),
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
	}
	if task.ClaimID != nil {
		resp.ClaimID = task.ClaimID.String()
	}
	return resp
}
