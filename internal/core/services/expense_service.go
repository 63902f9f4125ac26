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

// Expense categories accepted from the expense form
var expenseCategories = map[string]bool{
	"Utility":     true,
	"Salary":      true,
	"Maintenance": true,
	"Security":    true,
	"Event":       true,
	"Other":       true,
}

// ExpenseService handles the society expense register
type ExpenseService struct {
	expenseRepo repositories.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repositories.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput carries the expense form fields
type CreateExpenseInput struct {
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	ProofURL string    `json:"proof_url"`
}

// List lists all recorded expenses
func (s *ExpenseService) List(ctx context.Context) ([]*models.Expense, error) {
	return s.expenseRepo.List(ctx)
}

// Get gets an expense by ID
func (s *ExpenseService) Get(ctx context.Context, id uint) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return expense, nil
}

// Create records a new expense (admin only, enforced at the route)
func (s *ExpenseService) Create(ctx context.Context, input *CreateExpenseInput, recordedBy string) (*models.Expense, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !expenseCategories[input.Category] {
		return nil, domain.ErrInvalidInput
	}
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	expense := &models.Expense{
		Title:      strings.TrimSpace(input.Title),
		Category:   input.Category,
		Amount:     input.Amount,
		Date:       date,
		ProofURL:   input.ProofURL,
		RecordedBy: recordedBy,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// TotalThisMonth sums expenses since the first of the current month
func (s *ExpenseService) TotalThisMonth(ctx context.Context) (float64, error) {
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.expenseRepo.TotalSince(ctx, firstOfMonth)
}
