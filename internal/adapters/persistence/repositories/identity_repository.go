package repositories

import (
	"context"

	"nagari-society/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// identityRepository implements IdentityRepository interface
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository creates a new identity repository
func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

// Create creates a new identity
func (r *identityRepository) Create(ctx context.Context, identity *models.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

// GetByID gets an identity by ID
func (r *identityRepository) GetByID(ctx context.Context, id uint) (*models.Identity, error) {
	var identity models.Identity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// GetByPhone gets an identity by its normalized phone number
func (r *identityRepository) GetByPhone(ctx context.Context, phone string) (*models.Identity, error) {
	var identity models.Identity
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// Update updates an identity
func (r *identityRepository) Update(ctx context.Context, identity *models.Identity) error {
	return r.db.WithContext(ctx).Save(identity).Error
}

// List lists identities with pagination
func (r *identityRepository) List(ctx context.Context, offset, limit int) ([]*models.Identity, int64, error) {
	var identities []*models.Identity
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Identity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("full_name").Find(&identities).Error; err != nil {
		return nil, 0, err
	}

	return identities, total, nil
}

// CountByRole counts identities with the given role
func (r *identityRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Identity{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
