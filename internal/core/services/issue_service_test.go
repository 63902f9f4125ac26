package services

import (
	"context"
	"errors"
	"testing"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/core/domain"
)

func newIssueService(t *testing.T) (*IssueService, context.Context) {
	t.Helper()
	return NewIssueService(repositories.NewIssueRepository(newTestDB(t))), context.Background()
}

func TestIssueVisibility(t *testing.T) {
	svc, ctx := newIssueService(t)

	mine, err := svc.Create(ctx, 1, &CreateIssueInput{Title: "Leaking tap", Category: "Plumbing"})
	if err != nil {
		t.Fatalf("create mine: %v", err)
	}
	theirs, err := svc.Create(ctx, 2, &CreateIssueInput{Title: "Broken light", Category: "Electrical"})
	if err != nil {
		t.Fatalf("create theirs: %v", err)
	}

	// A member lists only their own complaints
	issues, err := svc.List(ctx, 1, models.RoleMember)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(issues) != 1 || issues[0].ID != mine.ID {
		t.Errorf("member list = %+v, want only own complaint", issues)
	}

	// An admin sees everything
	issues, err = svc.List(ctx, 99, models.RoleAdmin)
	if err != nil {
		t.Fatalf("admin List: %v", err)
	}
	if len(issues) != 2 {
		t.Errorf("admin list length = %d, want 2", len(issues))
	}

	// A member cannot read another member's complaint, an admin can
	if _, err := svc.Get(ctx, theirs.ID, 1, models.RoleMember); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("cross-member get = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, theirs.ID, 99, models.RoleAdmin); err != nil {
		t.Errorf("admin get: %v", err)
	}
}

func TestIssueCreateValidation(t *testing.T) {
	svc, ctx := newIssueService(t)

	tests := []struct {
		name  string
		input CreateIssueInput
	}{
		{"blank title", CreateIssueInput{Title: "  ", Category: "Plumbing"}},
		{"bad category", CreateIssueInput{Title: "X", Category: "Astrology"}},
		{"no category", CreateIssueInput{Title: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, 1, &tt.input); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestIssueLifecycle(t *testing.T) {
	svc, ctx := newIssueService(t)

	issue, err := svc.Create(ctx, 1, &CreateIssueInput{Title: "Lift stuck", Category: "Maintenance"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if issue.Status != models.IssuePending {
		t.Fatalf("fresh issue status = %s, want pending", issue.Status)
	}

	issue, err = svc.UpdateStatus(ctx, issue.ID, models.IssueInProgress, "")
	if err != nil {
		t.Fatalf("to in progress: %v", err)
	}
	if issue.ResolvedAt != nil {
		t.Error("in-progress issue should not carry a resolution time")
	}

	issue, err = svc.UpdateStatus(ctx, issue.ID, models.IssueResolved, "Technician replaced the motor")
	if err != nil {
		t.Fatalf("to resolved: %v", err)
	}
	if issue.ResolvedAt == nil {
		t.Error("resolved issue should carry a resolution time")
	}
	if issue.Resolution != "Technician replaced the motor" {
		t.Errorf("resolution = %q", issue.Resolution)
	}

	if _, err := svc.UpdateStatus(ctx, issue.ID, "vanished", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad status = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.UpdateStatus(ctx, 999, models.IssueClosed, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown issue = %v, want ErrNotFound", err)
	}
}
