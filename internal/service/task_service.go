package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/events"
	"github.com/spec-kit/task-tracker/internal/repository"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// TaskService coordinates task workflows. Reads are open to any caller;
// creation binds the current principal as owner; update and delete run the
// owner-or-admin policy first.
type TaskService struct {
	tasks      repository.TaskRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TaskDependencies bundles collaborators for the task service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
}

// TaskUpdateInput describes a full task update. A non-nil OwnerEmail
// reassigns ownership.
type TaskUpdateInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	OwnerEmail  *string
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListTasks returns tasks matching the filter.
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// GetTask fetches a single task by id.
func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

// CreateTask creates a task owned by the current principal. No policy check
// runs here: ownership is assigned, not contested.
func (s *TaskService) CreateTask(ctx context.Context, principal *auth.Principal, input TaskCreateInput) (*domain.Task, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	task := &domain.Task{
		Title:         input.Title,
		Description:   input.Description,
		Status:        status,
		Priority:      priority,
		OwnerID:       principal.User.ID,
		OwnerEmail:    principal.Email,
		OwnerUsername: principal.User.Username,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventTaskCreated, principal,
		events.TaskCreatedPayload{TaskID: task.ID, Title: task.Title, Priority: task.Priority, Owner: task.OwnerEmail})
	return task, nil
}

// UpdateTask applies a full update after the ownership check.
func (s *TaskService) UpdateTask(ctx context.Context, principal *auth.Principal, id string, input TaskUpdateInput) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutateTask(principal, task.OwnerEmail) {
		return nil, apperrors.NewForbidden("not allowed to modify this task")
	}

	oldStatus := task.Status
	oldOwner := task.OwnerEmail

	task.Title = input.Title
	task.Description = input.Description
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}

	if input.OwnerEmail != nil && *input.OwnerEmail != task.OwnerEmail {
		owner, err := s.users.GetByEmail(ctx, *input.OwnerEmail)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("user", map[string]any{"email": *input.OwnerEmail})
			}
			return nil, apperrors.MapError(err)
		}
		task.OwnerID = owner.ID
		task.OwnerEmail = owner.Email
		task.OwnerUsername = owner.Username
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	if task.Status != oldStatus {
		s.publish(ctx, events.EventTaskUpdated, principal,
			events.TaskUpdatedPayload{TaskID: task.ID, OldStatus: oldStatus, NewStatus: task.Status})
	}
	if task.OwnerEmail != oldOwner {
		s.publish(ctx, events.EventTaskOwnerChanged, principal,
			events.TaskOwnerChangedPayload{TaskID: task.ID, OldOwner: oldOwner, NewOwner: task.OwnerEmail})
	}
	return task, nil
}

// DeleteTask removes a task after the ownership check.
func (s *TaskService) DeleteTask(ctx context.Context, principal *auth.Principal, id string) error {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutateTask(principal, task.OwnerEmail) {
		return apperrors.NewForbidden("not allowed to delete this task")
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventTaskDeleted, principal,
		events.TaskDeletedPayload{TaskID: task.ID, Title: task.Title})
	return nil
}

func (s *TaskService) publish(ctx context.Context, eventType events.EventType, principal *auth.Principal, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	actor := events.Actor{}
	if principal != nil {
		actor = events.Actor{Email: principal.Email, Role: principal.Role}
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
