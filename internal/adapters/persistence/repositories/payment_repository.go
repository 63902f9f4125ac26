package repositories

import (
	"context"

	"nagari-society/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment record
func (r *paymentRepository) Create(ctx context.Context, payment *models.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByID gets a payment record by ID
func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.PaymentRecord, error) {
	var payment models.PaymentRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByIdentity lists payment records for one identity, newest first
func (r *paymentRepository) ListByIdentity(ctx context.Context, identityID uint) ([]*models.PaymentRecord, error) {
	var payments []*models.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// Update updates a payment record
func (r *paymentRepository) Update(ctx context.Context, payment *models.PaymentRecord) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// ExistsForPeriod checks whether a due already exists for the billing period
func (r *paymentRepository) ExistsForPeriod(ctx context.Context, identityID uint, period string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).
		Where("identity_id = ? AND period = ?", identityID, period).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus counts payment records with the given status
func (r *paymentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
