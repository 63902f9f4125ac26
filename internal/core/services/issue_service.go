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

// Issue categories accepted from the complaint form
var issueCategories = map[string]bool{
	"Plumbing":    true,
	"Electrical":  true,
	"Security":    true,
	"Maintenance": true,
	"Other":       true,
}

// IssueService handles member complaints
type IssueService struct {
	issueRepo repositories.IssueRepository
}

// NewIssueService creates a new issue service
func NewIssueService(issueRepo repositories.IssueRepository) *IssueService {
	return &IssueService{issueRepo: issueRepo}
}

// CreateIssueInput carries the complaint form fields
type CreateIssueInput struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// List lists issues: admins see every complaint, members only their own
func (s *IssueService) List(ctx context.Context, identityID uint, role string) ([]*models.Issue, error) {
	if role == models.RoleAdmin {
		return s.issueRepo.List(ctx)
	}
	return s.issueRepo.ListByIdentity(ctx, identityID)
}

// Get gets an issue; members can only see their own
func (s *IssueService) Get(ctx context.Context, id, identityID uint, role string) (*models.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if role != models.RoleAdmin && issue.IdentityID != identityID {
		return nil, domain.ErrForbidden
	}
	return issue, nil
}

// Create files a new complaint; the server assigns status and timestamp
func (s *IssueService) Create(ctx context.Context, identityID uint, input *CreateIssueInput) (*models.Issue, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !issueCategories[input.Category] {
		return nil, domain.ErrInvalidInput
	}

	issue := &models.Issue{
		IdentityID:  identityID,
		Title:       strings.TrimSpace(input.Title),
		Category:    input.Category,
		Description: input.Description,
		Status:      models.IssuePending,
	}
	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// UpdateStatus moves an issue through its lifecycle (admin only,
// enforced at the route). Resolving stamps the resolution time.
func (s *IssueService) UpdateStatus(ctx context.Context, id uint, status, resolution string) (*models.Issue, error) {
	switch status {
	case models.IssuePending, models.IssueInProgress, models.IssueResolved, models.IssueClosed:
	default:
		return nil, domain.ErrInvalidInput
	}

	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	issue.Status = status
	if resolution != "" {
		issue.Resolution = resolution
	}
	if status == models.IssueResolved || status == models.IssueClosed {
		now := time.Now()
		issue.ResolvedAt = &now
	}

	if err := s.issueRepo.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}
