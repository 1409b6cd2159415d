package domain

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// TaskPriority enumerates urgency levels.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// ParseTaskStatus normalizes a caller-supplied status string.
func ParseTaskStatus(value string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case TaskStatusTodo:
		return TaskStatusTodo, nil
	case TaskStatusInProgress:
		return TaskStatusInProgress, nil
	case TaskStatusCompleted:
		return TaskStatusCompleted, nil
	}
	return "", fmt.Errorf("unknown task status: %q", value)
}

// ParseTaskPriority normalizes a caller-supplied priority string.
func ParseTaskPriority(value string) (TaskPriority, error) {
	switch TaskPriority(strings.ToUpper(strings.TrimSpace(value))) {
	case TaskPriorityLow:
		return TaskPriorityLow, nil
	case TaskPriorityMedium:
		return TaskPriorityMedium, nil
	case TaskPriorityHigh:
		return TaskPriorityHigh, nil
	}
	return "", fmt.Errorf("unknown task priority: %q", value)
}

// Task is the aggregate for tracked work items. Every task has exactly one
// owner, assigned at creation and changed only through an authorized update.
type Task struct {
	ID            string
	Title         string
	Description   string
	Status        TaskStatus
	Priority      TaskPriority
	OwnerID       string
	OwnerEmail    string
	OwnerUsername string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
