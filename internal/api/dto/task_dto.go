package dto

import (
	"time"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// TaskRequest payload for task creation and updates. OwnerEmail is only
// honored on updates, where it reassigns ownership.
type TaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	OwnerEmail  *string `json:"owner_email,omitempty"`
}

// TaskResponse is the serialized task representation.
type TaskResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	OwnerEmail    string    `json:"owner_email"`
	OwnerUsername string    `json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromTask maps a domain task into its response shape.
func FromTask(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        string(task.Status),
		Priority:      string(task.Priority),
		OwnerEmail:    task.OwnerEmail,
		OwnerUsername: task.OwnerUsername,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// FromTasks maps a slice of domain tasks.
func FromTasks(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, FromTask(&tasks[i]))
	}
	return out
}
