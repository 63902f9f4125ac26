package services

import (
	"context"
	"errors"
	"strings"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/core/domain"

	"gorm.io/gorm"
)

// AGMService handles annual general meeting records
type AGMService struct {
	agmRepo repositories.AGMRepository
}

// NewAGMService creates a new AGM service
func NewAGMService(agmRepo repositories.AGMRepository) *AGMService {
	return &AGMService{agmRepo: agmRepo}
}

// CreateAGMInput carries the AGM session fields
type CreateAGMInput struct {
	Year    int    `json:"year"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Venue   string `json:"venue"`
	Status  string `json:"status"`
	Quorum  string `json:"quorum"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// AgendaItemInput carries an agenda item with its voting outcome
type AgendaItemInput struct {
	Title        string `json:"title"`
	ProposedDate string `json:"proposed_date"`
	Status       string `json:"status"`
	YesVotes     int    `json:"yes_votes"`
	NoVotes      int    `json:"no_votes"`
}

// GetByYear returns the AGM session for a year with its agenda
func (s *AGMService) GetByYear(ctx context.Context, year int) (*models.AGMSession, error) {
	session, err := s.agmRepo.GetByYear(ctx, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

// List lists all AGM sessions, newest first
func (s *AGMService) List(ctx context.Context) ([]*models.AGMSession, error) {
	return s.agmRepo.List(ctx)
}

// Create records a new AGM session (admin only, enforced at the route)
func (s *AGMService) Create(ctx context.Context, input *CreateAGMInput) (*models.AGMSession, error) {
	if input.Year < 1900 {
		return nil, domain.ErrInvalidInput
	}

	status := input.Status
	switch status {
	case models.AGMActive, models.AGMUpcoming, models.AGMCompleted:
	case "":
		status = models.AGMUpcoming
	default:
		return nil, domain.ErrInvalidInput
	}

	session := &models.AGMSession{
		Year:    input.Year,
		Date:    input.Date,
		Time:    input.Time,
		Venue:   input.Venue,
		Status:  status,
		Quorum:  input.Quorum,
		Present: input.Present,
		Absent:  input.Absent,
	}
	if err := s.agmRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddAgendaItem appends an agenda item to the session for a year
func (s *AGMService) AddAgendaItem(ctx context.Context, year int, input *AgendaItemInput) (*models.AgendaItem, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrInvalidInput
	}

	status := input.Status
	switch status {
	case models.AgendaApproved, models.AgendaRejected, models.AgendaDeferred:
	case "":
		status = models.AgendaDeferred
	default:
		return nil, domain.ErrInvalidInput
	}

	session, err := s.agmRepo.GetByYear(ctx, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	item := &models.AgendaItem{
		AGMSessionID: session.ID,
		Title:        strings.TrimSpace(input.Title),
		ProposedDate: input.ProposedDate,
		Status:       status,
		YesVotes:     input.YesVotes,
		NoVotes:      input.NoVotes,
	}
	if err := s.agmRepo.AddAgendaItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RecordOutcome updates an agenda item's voting outcome
func (s *AGMService) RecordOutcome(ctx context.Context, itemID uint, status string, yesVotes, noVotes int) (*models.AgendaItem, error) {
	switch status {
	case models.AgendaApproved, models.AgendaRejected, models.AgendaDeferred:
	default:
		return nil, domain.ErrInvalidInput
	}

	item, err := s.agmRepo.GetAgendaItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	item.Status = status
	item.YesVotes = yesVotes
	item.NoVotes = noVotes
	if err := s.agmRepo.UpdateAgendaItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
