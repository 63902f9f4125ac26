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

// NoticeService handles the society notice board
type NoticeService struct {
	noticeRepo repositories.NoticeRepository
}

// NewNoticeService creates a new notice service
func NewNoticeService(noticeRepo repositories.NoticeRepository) *NoticeService {
	return &NoticeService{noticeRepo: noticeRepo}
}

// NoticeView is a notice with the viewer's read flag
type NoticeView struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Type     string    `json:"type"`
	Tags     []string  `json:"tags"`
	PostedBy string    `json:"posted_by"`
	PostedAt time.Time `json:"posted_at"`
	IsRead   bool      `json:"is_read"`
}

// CreateNoticeInput carries the notice form fields
type CreateNoticeInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Type    string   `json:"type"`
	Tags    []string `json:"tags"`
}

// List lists all notices with read flags for the viewing identity
func (s *NoticeService) List(ctx context.Context, identityID uint) ([]*NoticeView, error) {
	notices, err := s.noticeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	readIDs, err := s.noticeRepo.ReadIDs(ctx, identityID)
	if err != nil {
		return nil, err
	}

	views := make([]*NoticeView, 0, len(notices))
	for _, notice := range notices {
		views = append(views, noticeView(notice, readIDs[notice.ID]))
	}
	return views, nil
}

// Get gets a single notice with the viewer's read flag
func (s *NoticeService) Get(ctx context.Context, id, identityID uint) (*NoticeView, error) {
	notice, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	readIDs, err := s.noticeRepo.ReadIDs(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return noticeView(notice, readIDs[notice.ID]), nil
}

// Create posts a new notice (admin only, enforced at the route)
func (s *NoticeService) Create(ctx context.Context, input *CreateNoticeInput, postedBy string) (*NoticeView, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrInvalidInput
	}

	noticeType := input.Type
	switch noticeType {
	case models.NoticeAnnouncement, models.NoticeEvent, models.NoticeReminder:
	case "":
		noticeType = models.NoticeAnnouncement
	default:
		return nil, domain.ErrInvalidInput
	}

	notice := &models.Notice{
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Type:     noticeType,
		Tags:     strings.Join(input.Tags, ","),
		PostedBy: postedBy,
	}
	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}

	return noticeView(notice, false), nil
}

// MarkRead records that the identity has read the notice. The notice
// must exist; the receipt is only reported once stored, so the client
// can trust the flag instead of flipping it optimistically.
func (s *NoticeService) MarkRead(ctx context.Context, id, identityID uint) error {
	if _, err := s.noticeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.noticeRepo.MarkRead(ctx, id, identityID)
}

func noticeView(notice *models.Notice, isRead bool) *NoticeView {
	var tags []string
	if notice.Tags != "" {
		tags = strings.Split(notice.Tags, ",")
	}
	return &NoticeView{
		ID:       notice.ID,
		Title:    notice.Title,
		Content:  notice.Content,
		Type:     notice.Type,
		Tags:     tags,
		PostedBy: notice.PostedBy,
		PostedAt: notice.PostedAt,
		IsRead:   isRead,
	}
}
