package repositories

import (
	"context"
	"time"

	"nagari-society/internal/adapters/persistence/models"
)

// IdentityRepository defines identity directory storage
type IdentityRepository interface {
	Create(ctx context.Context, identity *models.Identity) error
	GetByID(ctx context.Context, id uint) (*models.Identity, error)
	GetByPhone(ctx context.Context, phone string) (*models.Identity, error)
	Update(ctx context.Context, identity *models.Identity) error
	List(ctx context.Context, offset, limit int) ([]*models.Identity, int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// DeviceSessionRepository defines per-device session storage
type DeviceSessionRepository interface {
	GetByDeviceID(ctx context.Context, deviceID string) (*models.DeviceSession, error)
	Upsert(ctx context.Context, session *models.DeviceSession) error
}

// RefreshTokenRepository defines refresh token storage
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByIdentityID(ctx context.Context, identityID uint) error
	DeleteExpired(ctx context.Context) error
}

// NoticeRepository defines notice board storage
type NoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, id uint) (*models.Notice, error)
	List(ctx context.Context) ([]*models.Notice, error)
	MarkRead(ctx context.Context, noticeID, identityID uint) error
	ReadIDs(ctx context.Context, identityID uint) (map[uint]bool, error)
	CountUnread(ctx context.Context, identityID uint) (int64, error)
}

// IssueRepository defines complaint storage
type IssueRepository interface {
	Create(ctx context.Context, issue *models.Issue) error
	GetByID(ctx context.Context, id uint) (*models.Issue, error)
	List(ctx context.Context) ([]*models.Issue, error)
	ListByIdentity(ctx context.Context, identityID uint) ([]*models.Issue, error)
	Update(ctx context.Context, issue *models.Issue) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// VendorRepository defines vendor contract storage
type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id uint) (*models.Vendor, error)
	List(ctx context.Context) ([]*models.Vendor, error)
	ListEndingBefore(ctx context.Context, cutoff time.Time) ([]*models.Vendor, error)
}

// ExpenseRepository defines expense register storage
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id uint) (*models.Expense, error)
	List(ctx context.Context) ([]*models.Expense, error)
	TotalSince(ctx context.Context, since time.Time) (float64, error)
}

// TaskRepository defines task storage
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// PaymentRepository defines maintenance due storage
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.PaymentRecord) error
	GetByID(ctx context.Context, id uint) (*models.PaymentRecord, error)
	ListByIdentity(ctx context.Context, identityID uint) ([]*models.PaymentRecord, error)
	Update(ctx context.Context, payment *models.PaymentRecord) error
	ExistsForPeriod(ctx context.Context, identityID uint, period string) (bool, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// AGMRepository defines annual general meeting storage
type AGMRepository interface {
	Create(ctx context.Context, session *models.AGMSession) error
	GetByYear(ctx context.Context, year int) (*models.AGMSession, error)
	List(ctx context.Context) ([]*models.AGMSession, error)
	AddAgendaItem(ctx context.Context, item *models.AgendaItem) error
	UpdateAgendaItem(ctx context.Context, item *models.AgendaItem) error
	GetAgendaItem(ctx context.Context, id uint) (*models.AgendaItem, error)
}
