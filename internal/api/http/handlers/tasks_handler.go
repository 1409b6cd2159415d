package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-tracker/internal/api/dto"
	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository"
	"github.com/spec-kit/task-tracker/internal/service"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// TasksHandler manages task endpoints. Reads are open; mutations require
// identity and run the ownership policy inside the service.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// ListTasks GET /api/tasks.
func (h *TasksHandler) ListTasks(c *fiber.Ctx) error {
	filter := repository.TaskFilter{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if statuses := c.Query("status"); statuses != "" {
		for _, raw := range strings.Split(statuses, ",") {
			status, err := domain.ParseTaskStatus(raw)
			if err != nil {
				return apperrors.NewValidationError(err.Error(), nil)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}

	tasks, err := h.service.ListTasks(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTasks(tasks)})
}

// GetTask GET /api/tasks/:id.
func (h *TasksHandler) GetTask(c *fiber.Ctx) error {
	task, err := h.service.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTask(task)})
}

// CreateTask POST /api/tasks.
func (h *TasksHandler) CreateTask(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	input, err := parseTaskRequest(c, false)
	if err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Context(), principal, service.TaskCreateInput{
		Title:       input.title,
		Description: input.description,
		Status:      input.status,
		Priority:    input.priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTask(task)})
}

// UpdateTask PUT /api/tasks/:id.
func (h *TasksHandler) UpdateTask(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	input, err := parseTaskRequest(c, true)
	if err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.Context(), principal, c.Params("id"), service.TaskUpdateInput{
		Title:       input.title,
		Description: input.description,
		Status:      input.status,
		Priority:    input.priority,
		OwnerEmail:  input.ownerEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTask(task)})
}

// DeleteTask DELETE /api/tasks/:id.
func (h *TasksHandler) DeleteTask(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	if err := h.service.DeleteTask(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

type taskRequestInput struct {
	title       string
	description string
	status      domain.TaskStatus
	priority    domain.TaskPriority
	ownerEmail  *string
}

func parseTaskRequest(c *fiber.Ctx, allowOwner bool) (*taskRequestInput, error) {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	input := &taskRequestInput{title: req.Title, description: req.Description}
	if req.Status != "" {
		status, err := domain.ParseTaskStatus(req.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		input.status = status
	}
	if req.Priority != "" {
		priority, err := domain.ParseTaskPriority(req.Priority)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		input.priority = priority
	}
	if allowOwner {
		input.ownerEmail = req.OwnerEmail
	}
	return input, nil
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
