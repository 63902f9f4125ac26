package repositories

import (
	"context"
	"time"

	"nagari-society/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// expenseRepository implements ExpenseRepository interface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create records a new expense
func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// GetByID gets an expense by ID
func (r *expenseRepository) GetByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// List lists all expenses, most recent first
func (r *expenseRepository) List(ctx context.Context) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := r.db.WithContext(ctx).Order("date DESC").Find(&expenses).Error
	return expenses, err
}

// TotalSince sums expense amounts on or after the given date
func (r *expenseRepository) TotalSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Expense{}).
		Where("date >= ?", since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
