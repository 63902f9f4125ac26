package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/core/domain"
)

func TestTaskToggle(t *testing.T) {
	svc := NewTaskService(repositories.NewTaskRepository(newTestDB(t)))
	ctx := context.Background()

	task, err := svc.Create(ctx, &CreateTaskInput{
		Title:    "Submit Identity Proof",
		DueDate:  time.Now().AddDate(0, 0, 7),
		Priority: models.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Status != models.TaskPending {
		t.Fatalf("fresh task status = %s, want pending", task.Status)
	}

	task, err = svc.Toggle(ctx, task.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if task.Status != models.TaskCompleted {
		t.Errorf("toggled status = %s, want completed", task.Status)
	}

	task, err = svc.Toggle(ctx, task.ID)
	if err != nil {
		t.Fatalf("Toggle back: %v", err)
	}
	if task.Status != models.TaskPending {
		t.Errorf("re-toggled status = %s, want pending", task.Status)
	}

	if _, err := svc.Toggle(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown task = %v, want ErrNotFound", err)
	}
}

func TestTaskCreateValidation(t *testing.T) {
	svc := NewTaskService(repositories.NewTaskRepository(newTestDB(t)))
	ctx := context.Background()

	if _, err := svc.Create(ctx, &CreateTaskInput{Title: " "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank title = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Create(ctx, &CreateTaskInput{Title: "X", Priority: "urgent-ish"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad priority = %v, want ErrInvalidInput", err)
	}

	// Empty priority defaults to medium
	task, err := svc.Create(ctx, &CreateTaskInput{Title: "X"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("default priority = %s, want medium", task.Priority)
	}
}
