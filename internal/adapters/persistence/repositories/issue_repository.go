package repositories

import (
	"context"

	"nagari-society/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// issueRepository implements IssueRepository interface
type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

// Create creates a new issue
func (r *issueRepository) Create(ctx context.Context, issue *models.Issue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

// GetByID gets an issue by ID
func (r *issueRepository) GetByID(ctx context.Context, id uint) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&issue).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// List lists all issues, most recent first
func (r *issueRepository) List(ctx context.Context) ([]*models.Issue, error) {
	var issues []*models.Issue
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&issues).Error
	return issues, err
}

// ListByIdentity lists issues raised by one identity
func (r *issueRepository) ListByIdentity(ctx context.Context, identityID uint) ([]*models.Issue, error) {
	var issues []*models.Issue
	err := r.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Order("created_at DESC").
		Find(&issues).Error
	return issues, err
}

// Update updates an issue
func (r *issueRepository) Update(ctx context.Context, issue *models.Issue) error {
	return r.db.WithContext(ctx).Save(issue).Error
}

// CountByStatus counts issues with the given status
func (r *issueRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Issue{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
