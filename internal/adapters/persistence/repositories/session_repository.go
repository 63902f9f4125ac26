package repositories

import (
	"context"
	"errors"
	"time"

	"nagari-society/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// deviceSessionRepository implements DeviceSessionRepository interface
type deviceSessionRepository struct {
	db *gorm.DB
}

// NewDeviceSessionRepository creates a new device session repository
func NewDeviceSessionRepository(db *gorm.DB) DeviceSessionRepository {
	return &deviceSessionRepository{db: db}
}

// GetByDeviceID gets the session row for a device
func (r *deviceSessionRepository) GetByDeviceID(ctx context.Context, deviceID string) (*models.DeviceSession, error) {
	var session models.DeviceSession
	err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Upsert creates or updates the session row for a device
func (r *deviceSessionRepository) Upsert(ctx context.Context, session *models.DeviceSession) error {
	var existing models.DeviceSession
	err := r.db.WithContext(ctx).Where("device_id = ?", session.DeviceID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(session).Error
		}
		return err
	}

	session.ID = existing.ID
	session.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(session).Error
}

// refreshTokenRepository implements RefreshTokenRepository interface
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create stores a new refresh token
func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByTokenHash gets a refresh token by its hash
func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Revoke marks a token as revoked
func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked_at", &now).Error
}

// RevokeByTokenHash marks a token as revoked by its hash
func (r *refreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", &now).Error
}

// RevokeAllByIdentityID revokes every active token for an identity
func (r *refreshTokenRepository) RevokeAllByIdentityID(ctx context.Context, identityID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("identity_id = ? AND revoked_at IS NULL", identityID).
		Update("revoked_at", &now).Error
}

// DeleteExpired removes tokens past their expiry
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{}).Error
}
