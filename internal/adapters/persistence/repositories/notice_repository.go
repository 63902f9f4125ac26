package repositories

import (
	"context"
	"errors"

	"nagari-society/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// noticeRepository implements NoticeRepository interface
type noticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository creates a new notice repository
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

// Create creates a new notice
func (r *noticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

// GetByID gets a notice by ID
func (r *noticeRepository) GetByID(ctx context.Context, id uint) (*models.Notice, error) {
	var notice models.Notice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&notice).Error
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

// List lists all notices, most recent first
func (r *noticeRepository) List(ctx context.Context) ([]*models.Notice, error) {
	var notices []*models.Notice
	err := r.db.WithContext(ctx).Order("posted_at DESC").Find(&notices).Error
	return notices, err
}

// MarkRead records a read receipt; repeated marks are idempotent
func (r *noticeRepository) MarkRead(ctx context.Context, noticeID, identityID uint) error {
	var existing models.NoticeRead
	err := r.db.WithContext(ctx).
		Where("notice_id = ? AND identity_id = ?", noticeID, identityID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(&models.NoticeRead{
		NoticeID:   noticeID,
		IdentityID: identityID,
	}).Error
}

// ReadIDs returns the set of notice IDs the identity has read
func (r *noticeRepository) ReadIDs(ctx context.Context, identityID uint) (map[uint]bool, error) {
	var reads []models.NoticeRead
	if err := r.db.WithContext(ctx).Where("identity_id = ?", identityID).Find(&reads).Error; err != nil {
		return nil, err
	}

	ids := make(map[uint]bool, len(reads))
	for _, read := range reads {
		ids[read.NoticeID] = true
	}
	return ids, nil
}

// CountUnread counts notices without a read receipt for the identity
func (r *noticeRepository) CountUnread(ctx context.Context, identityID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notice{}).
		Where("id NOT IN (?)",
			r.db.Model(&models.NoticeRead{}).Select("notice_id").Where("identity_id = ?", identityID),
		).
		Count(&count).Error
	return count, err
}
