package handlers

import (
	"errors"
	"strconv"

	"nagari-society/internal/core/domain"
	"nagari-society/internal/core/services"
	"nagari-society/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles the task checklist endpoints
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List returns all tasks
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.taskService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load tasks")
	}

	return response.Success(c, "Tasks retrieved", tasks)
}

// Create adds a new task (admin only)
// @Summary Create task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	task, err := h.taskService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create task")
	}

	return response.Created(c, "Task created", task)
}

// Toggle flips a task between pending and completed and returns the
// stored record so the client reflects the confirmed state
// @Summary Toggle task completion
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Toggle(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Task not found")
		}
		return response.InternalServerError(c, "Failed to update task")
	}

	return response.Success(c, "Task updated", task)
}
