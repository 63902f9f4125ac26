package services

import (
	"context"
	"testing"
	"time"

	"nagari-society/internal/adapters/persistence/repositories"
)

func TestDashboards(t *testing.T) {
	db := newTestDB(t)
	seedAdmin(t, db)
	cfg := newTestConfig()
	ctx := context.Background()

	identityRepo := repositories.NewIdentityRepository(db)
	noticeRepo := repositories.NewNoticeRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	directory := NewDirectoryService(identityRepo, cfg)
	notices := NewNoticeService(noticeRepo)
	issues := NewIssueService(issueRepo)
	vendors := NewVendorService(repositories.NewVendorRepository(db))
	expenses := NewExpenseService(repositories.NewExpenseRepository(db))
	tasks := NewTaskService(taskRepo)
	payments := NewPaymentService(paymentRepo, identityRepo)
	svc := NewDashboardService(identityRepo, noticeRepo, issueRepo, taskRepo, paymentRepo, vendors, expenses)

	member, err := directory.Register(ctx, "Asha", "9000000201", "A-101", "1111")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := notices.Create(ctx, &CreateNoticeInput{Title: "Water Cut"}, "Admin"); err != nil {
		t.Fatalf("notice: %v", err)
	}
	read, err := notices.Create(ctx, &CreateNoticeInput{Title: "AGM Minutes"}, "Admin")
	if err != nil {
		t.Fatalf("notice: %v", err)
	}
	if err := notices.MarkRead(ctx, read.ID, member.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	if _, err := issues.Create(ctx, member.ID, &CreateIssueInput{Title: "Leak", Category: "Plumbing"}); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tasks.Create(ctx, &CreateTaskInput{Title: "Submit Identity Proof"}); err != nil {
		t.Fatalf("task: %v", err)
	}
	if _, err := payments.GenerateMonthlyDues(ctx, "June 2025", 2500); err != nil {
		t.Fatalf("dues: %v", err)
	}
	now := time.Now()
	if _, err := vendors.Create(ctx, &CreateVendorInput{
		Name: "Metro Electricals", Service: "Electrical",
		ContractStart: now.AddDate(-1, 0, 0), ContractEnd: now.AddDate(0, 0, 20),
	}); err != nil {
		t.Fatalf("vendor: %v", err)
	}
	if _, err := expenses.Create(ctx, &CreateExpenseInput{
		Title: "Pump repair", Category: "Maintenance", Amount: 4800, Date: now,
	}, "Admin"); err != nil {
		t.Fatalf("expense: %v", err)
	}

	t.Run("member summary", func(t *testing.T) {
		data, err := svc.GetMemberDashboard(ctx, member.ID)
		if err != nil {
			t.Fatalf("GetMemberDashboard: %v", err)
		}
		if data.UnreadNotices != 1 {
			t.Errorf("unread notices = %d, want 1", data.UnreadNotices)
		}
		if data.PendingPayments != 1 {
			t.Errorf("pending payments = %d, want 1", data.PendingPayments)
		}
		if data.OpenIssues != 1 {
			t.Errorf("open issues = %d, want 1", data.OpenIssues)
		}
		if data.PendingTasks != 1 {
			t.Errorf("pending tasks = %d, want 1", data.PendingTasks)
		}
	})

	t.Run("admin summary", func(t *testing.T) {
		data, err := svc.GetAdminDashboard(ctx)
		if err != nil {
			t.Fatalf("GetAdminDashboard: %v", err)
		}
		if data.TotalMembers != 1 {
			t.Errorf("total members = %d, want 1 (the admin is not a member)", data.TotalMembers)
		}
		if data.PendingIssues != 1 || data.InProgressIssues != 0 {
			t.Errorf("issues = %d pending / %d in progress", data.PendingIssues, data.InProgressIssues)
		}
		if data.PendingPayments != 1 {
			t.Errorf("pending payments = %d, want 1", data.PendingPayments)
		}
		if data.ExpiringVendors != 1 {
			t.Errorf("expiring vendors = %d, want 1", data.ExpiringVendors)
		}
		if data.ExpensesThisMonth != 4800 {
			t.Errorf("expenses this month = %.2f, want 4800", data.ExpensesThisMonth)
		}
	})
}
