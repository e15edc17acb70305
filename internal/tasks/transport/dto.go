// Package transport defines request and response DTOs for the tasks API.
package transport

// CreateTaskRequest is the payload for adding a checklist entry by hand.
type CreateTaskRequest struct {
	ClaimID string `json:"claimId" validate:"omitempty,uuid"`
	Title   string `json:"title" validate:"required,max=300"`
	Kind    string `json:"kind" validate:"required,oneof=document task"`
}

// UpdateTaskRequest toggles or renames a checklist entry.
type UpdateTaskRequest struct {
	Title *string `json:"title" validate:"omitempty,max=300"`
	Done  *bool   `json:"done"`
}

// ListTasksRequest carries the query filters for listing tasks.
type ListTasksRequest struct {
	ClaimID string `form:"claimId" validate:"omitempty,uuid"`
	Done    string `form:"done" validate:"omitempty,oneof=true false"`
}

// TaskResponse is the API representation of a checklist entry.
type TaskResponse struct {
	ID        string `json:"id"`
	ClaimID   string `json:"claimId,omitempty"`
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	Done      bool   `json:"done"`
	Source    string `json:"source"`
	CreatedAt string `json:"createdAt"`
}

// TaskListResponse wraps a list of tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}
