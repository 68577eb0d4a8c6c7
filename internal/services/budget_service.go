package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/config"
	"github.com/deb007/travelbuddy/internal/db"
	"github.com/deb007/travelbuddy/internal/models"
)

type budgetService struct {
	db  *db.DB
	cfg *config.Config
}

// NewBudgetService creates the budget configuration and read service.
func NewBudgetService(database *db.DB, cfg *config.Config) BudgetService {
	return &budgetService{db: database, cfg: cfg}
}

// SetCap sets (or replaces) the cap for a currency, creating the budget row if
// needed. The spent counter is left alone.
func (s *budgetService) SetCap(ctx context.Context, currency string, cap decimal.Decimal) (*models.BudgetStatus, error) {
	currency = strings.ToUpper(currency)
	if !s.cfg.SupportsCurrency(currency) {
		return nil, apperrors.Validation("currency", "unsupported currency")
	}
	if cap.IsNegative() {
		return nil, apperrors.Validation("max_amount", "must be non-negative")
	}

	budget := models.Budget{Currency: currency, MaxAmount: cap, SpentAmount: decimal.Zero}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"max_amount"}),
	}).Create(&budget).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, currency)
}

// Get returns the derived status for one currency's budget.
func (s *budgetService) Get(ctx context.Context, currency string) (*models.BudgetStatus, error) {
	currency = strings.ToUpper(currency)
	var budget models.Budget
	err := s.db.WithContext(ctx).First(&budget, "currency = ?", currency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("budget", currency)
	}
	if err != nil {
		return nil, err
	}
	status := budget.Status()
	return &status, nil
}

// List returns statuses for all budget rows ordered by currency.
func (s *budgetService) List(ctx context.Context) ([]*models.BudgetStatus, error) {
	var budgets []*models.Budget
	if err := s.db.WithContext(ctx).Order("currency").Find(&budgets).Error; err != nil {
		return nil, err
	}
	statuses := make([]*models.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		status := b.Status()
		statuses = append(statuses, &status)
	}
	return statuses, nil
}
