package services

import (
	"context"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
)

// DashboardService aggregates counts for the home screens
type DashboardService struct {
	identityRepo repositories.IdentityRepository
	noticeRepo   repositories.NoticeRepository
	issueRepo    repositories.IssueRepository
	taskRepo     repositories.TaskRepository
	paymentRepo  repositories.PaymentRepository
	vendors      *VendorService
	expenses     *ExpenseService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	identityRepo repositories.IdentityRepository,
	noticeRepo repositories.NoticeRepository,
	issueRepo repositories.IssueRepository,
	taskRepo repositories.TaskRepository,
	paymentRepo repositories.PaymentRepository,
	vendors *VendorService,
	expenses *ExpenseService,
) *DashboardService {
	return &DashboardService{
		identityRepo: identityRepo,
		noticeRepo:   noticeRepo,
		issueRepo:    issueRepo,
		taskRepo:     taskRepo,
		paymentRepo:  paymentRepo,
		vendors:      vendors,
		expenses:     expenses,
	}
}

// MemberDashboardData is the member home screen summary
type MemberDashboardData struct {
	UnreadNotices   int64 `json:"unread_notices"`
	PendingPayments int   `json:"pending_payments"`
	OpenIssues      int   `json:"open_issues"`
	PendingTasks    int64 `json:"pending_tasks"`
}

// AdminDashboardData is the admin home screen summary
type AdminDashboardData struct {
	TotalMembers      int64   `json:"total_members"`
	PendingIssues     int64   `json:"pending_issues"`
	InProgressIssues  int64   `json:"in_progress_issues"`
	PendingPayments   int64   `json:"pending_payments"`
	ExpiringVendors   int     `json:"expiring_vendors"`
	ExpensesThisMonth float64 `json:"expenses_this_month"`
}

// GetMemberDashboard builds the summary for one member
func (s *DashboardService) GetMemberDashboard(ctx context.Context, identityID uint) (*MemberDashboardData, error) {
	data := &MemberDashboardData{}

	unread, err := s.noticeRepo.CountUnread(ctx, identityID)
	if err != nil {
		return nil, err
	}
	data.UnreadNotices = unread

	payments, err := s.paymentRepo.ListByIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}
	for _, payment := range payments {
		if payment.Status != models.PaymentPaid {
			data.PendingPayments++
		}
	}

	issues, err := s.issueRepo.ListByIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		if issue.Status == models.IssuePending || issue.Status == models.IssueInProgress {
			data.OpenIssues++
		}
	}

	pendingTasks, err := s.taskRepo.CountByStatus(ctx, models.TaskPending)
	if err != nil {
		return nil, err
	}
	data.PendingTasks = pendingTasks

	return data, nil
}

// GetAdminDashboard builds the society-wide summary
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	members, err := s.identityRepo.CountByRole(ctx, models.RoleMember)
	if err != nil {
		return nil, err
	}
	data.TotalMembers = members

	if data.PendingIssues, err = s.issueRepo.CountByStatus(ctx, models.IssuePending); err != nil {
		return nil, err
	}
	if data.InProgressIssues, err = s.issueRepo.CountByStatus(ctx, models.IssueInProgress); err != nil {
		return nil, err
	}
	if data.PendingPayments, err = s.paymentRepo.CountByStatus(ctx, models.PaymentPending); err != nil {
		return nil, err
	}

	expiring, err := s.vendors.ExpiringSoon(ctx)
	if err != nil {
		return nil, err
	}
	data.ExpiringVendors = len(expiring)

	if data.ExpensesThisMonth, err = s.expenses.TotalThisMonth(ctx); err != nil {
		return nil, err
	}

	return data, nil
}
