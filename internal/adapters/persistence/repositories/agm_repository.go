package repositories

import (
	"context"

	"nagari-society/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// agmRepository implements AGMRepository interface
type agmRepository struct {
	db *gorm.DB
}

// NewAGMRepository creates a new AGM repository
func NewAGMRepository(db *gorm.DB) AGMRepository {
	return &agmRepository{db: db}
}

// Create creates a new AGM session
func (r *agmRepository) Create(ctx context.Context, session *models.AGMSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByYear gets the AGM session for a year, agenda included
func (r *agmRepository) GetByYear(ctx context.Context, year int) (*models.AGMSession, error) {
	var session models.AGMSession
	err := r.db.WithContext(ctx).Preload("Agenda").Where("year = ?", year).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List lists all AGM sessions, newest year first
func (r *agmRepository) List(ctx context.Context) ([]*models.AGMSession, error) {
	var sessions []*models.AGMSession
	err := r.db.WithContext(ctx).Preload("Agenda").Order("year DESC").Find(&sessions).Error
	return sessions, err
}

// AddAgendaItem appends an agenda item to a session
func (r *agmRepository) AddAgendaItem(ctx context.Context, item *models.AgendaItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateAgendaItem updates an agenda item
func (r *agmRepository) UpdateAgendaItem(ctx context.Context, item *models.AgendaItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// GetAgendaItem gets an agenda item by ID
func (r *agmRepository) GetAgendaItem(ctx context.Context, id uint) (*models.AgendaItem, error) {
	var item models.AgendaItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
