package repositories

import (
	"context"
	"time"

	"nagari-society/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// vendorRepository implements VendorRepository interface
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

// Create creates a new vendor contract
func (r *vendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// GetByID gets a vendor by ID
func (r *vendorRepository) GetByID(ctx context.Context, id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// List lists all vendors ordered by contract end
func (r *vendorRepository) List(ctx context.Context) ([]*models.Vendor, error) {
	var vendors []*models.Vendor
	err := r.db.WithContext(ctx).Order("contract_end").Find(&vendors).Error
	return vendors, err
}

// ListEndingBefore lists vendors whose contract ends before the cutoff
func (r *vendorRepository) ListEndingBefore(ctx context.Context, cutoff time.Time) ([]*models.Vendor, error) {
	var vendors []*models.Vendor
	err := r.db.WithContext(ctx).
		Where("contract_end < ?", cutoff).
		Order("contract_end").
		Find(&vendors).Error
	return vendors, err
}
