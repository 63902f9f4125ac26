package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/core/domain"

	"gorm.io/gorm"
)

// TaskService handles member action items
type TaskService struct {
	taskRepo repositories.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repositories.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput carries the task form fields
type CreateTaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    string    `json:"priority"`
}

// List lists all tasks
func (s *TaskService) List(ctx context.Context) ([]*models.Task, error) {
	return s.taskRepo.List(ctx)
}

// Create adds a new task (admin only, enforced at the route)
func (s *TaskService) Create(ctx context.Context, input *CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrInvalidInput
	}

	priority := input.Priority
	switch priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	case "":
		priority = models.PriorityMedium
	default:
		return nil, domain.ErrInvalidInput
	}

	task := &models.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      models.TaskPending,
		Priority:    priority,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Toggle flips a task between Pending and Completed. The updated record
// is returned so the client renders the confirmed state rather than
// assuming the flip succeeded.
func (s *TaskService) Toggle(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if task.Status == models.TaskPending {
		task.Status = models.TaskCompleted
	} else {
		task.Status = models.TaskPending
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
