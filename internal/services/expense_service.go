package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/config"
	"github.com/deb007/travelbuddy/internal/db"
	"github.com/deb007/travelbuddy/internal/models"
	"github.com/deb007/travelbuddy/internal/money"
)

// CreateExpenseInput carries the caller-supplied fields for a new expense.
type CreateExpenseInput struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Category      string          `json:"category"`
	Description   *string         `json:"description"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method"`
}

// ExpensePatch is a partial update. Nil fields are left untouched. Currency is
// carried only so that an attempt to change it can be rejected explicitly.
type ExpensePatch struct {
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Date          *time.Time       `json:"date"`
	PaymentMethod *string          `json:"payment_method"`
}

func (p *ExpensePatch) empty() bool {
	return p.Amount == nil && p.Category == nil && p.Description == nil &&
		p.Date == nil && p.PaymentMethod == nil
}

// ReconcileReport describes counter drift found (and fixed) by Reconcile.
type ReconcileReport struct {
	BudgetsAdjusted    []string `json:"budgets_adjusted"`
	ForexCardsAdjusted []string `json:"forex_cards_adjusted"`
}

type expenseService struct {
	db       *db.DB
	cfg      *config.Config
	resolver RateResolver
	logger   *zap.Logger
	now      func() time.Time
}

// NewExpenseService creates the expense write path. It is the sole writer of
// expense rows and of budget / forex card spent counters.
func NewExpenseService(database *db.DB, cfg *config.Config, resolver RateResolver, logger *zap.Logger) ExpenseService {
	return &expenseService{
		db:       database,
		cfg:      cfg,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates, converts and persists an expense, incrementing the budget
// ledger and, for forex-card payments, the card ledger in one transaction.
func (s *expenseService) Create(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	in.Currency = strings.ToUpper(in.Currency)
	if err := s.validate(in.Amount, in.Currency, in.Category, in.Date, in.PaymentMethod); err != nil {
		return nil, err
	}

	rate, equivalent := s.convert(ctx, in.Amount, in.Currency)

	expense := &models.Expense{
		ID:             uuid.NewString(),
		Amount:         in.Amount,
		Currency:       in.Currency,
		Category:       in.Category,
		Description:    in.Description,
		Date:           dateOnly(in.Date),
		PaymentMethod:  in.PaymentMethod,
		ExchangeRate:   rate.Rate,
		HomeEquivalent: equivalent,
		RateSource:     string(rate.Source),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.PaymentMethod == models.PaymentForexCard {
			if err := s.requireCard(tx, in.Currency); err != nil {
				return err
			}
		}
		if err := tx.Create(expense).Error; err != nil {
			return err
		}
		if err := s.applyBudgetDelta(tx, in.Currency, in.Amount); err != nil {
			return err
		}
		if in.PaymentMethod == models.PaymentForexCard {
			if err := s.applyCardDelta(tx, in.Currency, in.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// Update merges a partial patch onto an existing expense, re-validates the
// candidate, and rebalances both ledgers for the amount delta and any payment
// method transition. Currency changes are rejected outright.
func (s *expenseService) Update(ctx context.Context, id string, patch ExpensePatch) (*models.Expense, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Currency != nil {
		return nil, apperrors.Immutable("currency")
	}
	if patch.empty() {
		return nil, apperrors.Validation("patch", "no updatable fields supplied")
	}

	candidate := *existing
	if patch.Amount != nil {
		candidate.Amount = *patch.Amount
	}
	if patch.Category != nil {
		candidate.Category = *patch.Category
	}
	if patch.Description != nil {
		candidate.Description = patch.Description
	}
	if patch.Date != nil {
		candidate.Date = dateOnly(*patch.Date)
	}
	if patch.PaymentMethod != nil {
		candidate.PaymentMethod = *patch.PaymentMethod
	}

	if err := s.validate(candidate.Amount, candidate.Currency, candidate.Category, candidate.Date, candidate.PaymentMethod); err != nil {
		return nil, err
	}

	// The rate is re-resolved whenever the amount changes, matching Create.
	// Otherwise the equivalent recorded at logging time stands.
	if patch.Amount != nil && !candidate.Amount.Equal(existing.Amount) {
		rate, equivalent := s.convert(ctx, candidate.Amount, candidate.Currency)
		candidate.ExchangeRate = rate.Rate
		candidate.HomeEquivalent = equivalent
		candidate.RateSource = string(rate.Source)
	}

	amountDelta := candidate.Amount.Sub(existing.Amount)
	wasCard := existing.PaymentMethod == models.PaymentForexCard
	isCard := candidate.PaymentMethod == models.PaymentForexCard

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isCard && !wasCard {
			if err := s.requireCard(tx, candidate.Currency); err != nil {
				return err
			}
		}
		if !amountDelta.IsZero() {
			if err := s.applyBudgetDelta(tx, candidate.Currency, amountDelta); err != nil {
				return err
			}
		}
		switch {
		case wasCard && isCard:
			if !amountDelta.IsZero() {
				if err := s.applyCardDelta(tx, candidate.Currency, amountDelta); err != nil {
					return err
				}
			}
		case wasCard && !isCard:
			if err := s.applyCardDelta(tx, candidate.Currency, existing.Amount.Neg()); err != nil {
				return err
			}
		case !wasCard && isCard:
			if err := s.applyCardDelta(tx, candidate.Currency, candidate.Amount); err != nil {
				return err
			}
		}
		return tx.Save(&candidate).Error
	})
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

// Delete removes an expense, decrementing the budget ledger and, if it was
// paid by forex card, the card ledger.
func (s *expenseService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.applyBudgetDelta(tx, existing.Currency, existing.Amount.Neg()); err != nil {
			return err
		}
		if existing.PaymentMethod == models.PaymentForexCard {
			if err := s.applyCardDelta(tx, existing.Currency, existing.Amount.Neg()); err != nil {
				return err
			}
		}
		return tx.Delete(&models.Expense{}, "id = ?", id).Error
	})
}

// Get returns a single expense by id.
func (s *expenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("expense", id)
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// List returns expenses newest-first, with optional date/currency/category
// filters.
func (s *expenseService) List(ctx context.Context, filter *models.ExpenseFilter) ([]*models.Expense, error) {
	q := s.db.WithContext(ctx).Model(&models.Expense{})
	if filter != nil {
		if filter.StartDate != nil {
			q = q.Where("date >= ?", dateOnly(*filter.StartDate))
		}
		if filter.EndDate != nil {
			q = q.Where("date <= ?", dateOnly(*filter.EndDate))
		}
		if filter.Currency != "" {
			q = q.Where("currency = ?", strings.ToUpper(filter.Currency))
		}
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	var expenses []*models.Expense
	if err := q.Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Reconcile recomputes spent counters from the expense rows and overwrites
// any drifted ledger. Under correctly paired operations it is a no-op; any
// adjustment it reports indicates a consistency bug.
func (s *expenseService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{
		BudgetsAdjusted:    []string{},
		ForexCardsAdjusted: []string{},
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var budgets []*models.Budget
		if err := tx.Find(&budgets).Error; err != nil {
			return err
		}
		for _, b := range budgets {
			actual, err := sumExpenses(tx, b.Currency, false)
			if err != nil {
				return err
			}
			if !actual.Equal(b.SpentAmount) {
				s.logger.Warn("budget ledger drift",
					zap.String("currency", b.Currency),
					zap.String("counter", b.SpentAmount.String()),
					zap.String("recomputed", actual.String()))
				if err := tx.Model(&models.Budget{}).Where("currency = ?", b.Currency).
					Update("spent_amount", actual).Error; err != nil {
					return err
				}
				report.BudgetsAdjusted = append(report.BudgetsAdjusted, b.Currency)
			}
		}

		var cards []*models.ForexCard
		if err := tx.Find(&cards).Error; err != nil {
			return err
		}
		for _, c := range cards {
			actual, err := sumExpenses(tx, c.Currency, true)
			if err != nil {
				return err
			}
			if !actual.Equal(c.SpentAmount) {
				s.logger.Warn("forex card ledger drift",
					zap.String("currency", c.Currency),
					zap.String("counter", c.SpentAmount.String()),
					zap.String("recomputed", actual.String()))
				if err := tx.Model(&models.ForexCard{}).Where("currency = ?", c.Currency).
					Update("spent_amount", actual).Error; err != nil {
					return err
				}
				report.ForexCardsAdjusted = append(report.ForexCardsAdjusted, c.Currency)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *expenseService) validate(amount decimal.Decimal, currency, category string, date time.Time, paymentMethod string) error {
	if !amount.IsPositive() {
		return apperrors.Validation("amount", "must be positive")
	}
	if !s.cfg.SupportsCurrency(currency) {
		return apperrors.Validation("currency", "unsupported currency")
	}
	if !s.cfg.SupportsCategory(category) {
		return apperrors.Validation("category", "unsupported category")
	}
	if dateOnly(date).After(dateOnly(s.now())) {
		return apperrors.Validation("date", "cannot be in the future")
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		return apperrors.Validation("payment_method", "unsupported payment method")
	}
	if paymentMethod == models.PaymentForexCard {
		if currency == s.cfg.HomeCurrency {
			return apperrors.Validation("payment_method", "forex card cannot be used for the home currency")
		}
		if !s.cfg.SupportsForexCard(currency) {
			return apperrors.Validation("payment_method", "no forex card supported for "+currency)
		}
	}
	return nil
}

// convert resolves the rate and computes the rounded home equivalent. For the
// home currency the equivalent is the amount itself, untouched by rounding.
func (s *expenseService) convert(ctx context.Context, amount decimal.Decimal, currency string) (models.ResolvedRate, decimal.Decimal) {
	rate := s.resolver.Resolve(ctx, currency)
	if rate.Source == models.RateSourceHome {
		return rate, amount
	}
	return rate, money.Round2(amount.Mul(rate.Rate))
}

// requireCard enforces that a forex-card payment targets a configured card.
func (s *expenseService) requireCard(tx *gorm.DB, currency string) error {
	var card models.ForexCard
	err := tx.First(&card, "currency = ?", currency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Validation("payment_method", "no forex card configured for "+currency)
	}
	return err
}

// applyBudgetDelta adjusts the per-currency spent counter, creating the budget
// row on first use. Decrements below zero are clamped and logged; the clamp is
// a drift safety net, never an expected path.
func (s *expenseService) applyBudgetDelta(tx *gorm.DB, currency string, delta decimal.Decimal) error {
	budget := models.Budget{Currency: currency, MaxAmount: decimal.Zero, SpentAmount: decimal.Zero}
	if err := tx.Where("currency = ?", currency).FirstOrCreate(&budget).Error; err != nil {
		return err
	}
	newSpent := budget.SpentAmount.Add(delta)
	if newSpent.IsNegative() {
		s.logger.Warn("budget ledger underflow clamped",
			zap.String("currency", currency),
			zap.String("spent", budget.SpentAmount.String()),
			zap.String("delta", delta.String()))
		newSpent = decimal.Zero
	}
	return tx.Model(&models.Budget{}).Where("currency = ?", currency).
		Update("spent_amount", newSpent).Error
}

// applyCardDelta adjusts a forex card's spent counter with the same clamp rule
// as the budget ledger. The card row must already exist.
func (s *expenseService) applyCardDelta(tx *gorm.DB, currency string, delta decimal.Decimal) error {
	var card models.ForexCard
	if err := tx.First(&card, "currency = ?", currency).Error; err != nil {
		return err
	}
	newSpent := card.SpentAmount.Add(delta)
	if newSpent.IsNegative() {
		s.logger.Warn("forex card ledger underflow clamped",
			zap.String("currency", currency),
			zap.String("spent", card.SpentAmount.String()),
			zap.String("delta", delta.String()))
		newSpent = decimal.Zero
	}
	return tx.Model(&models.ForexCard{}).Where("currency = ?", currency).
		Update("spent_amount", newSpent).Error
}

// sumExpenses totals amounts in Go rather than SQL so decimal arithmetic is
// exact when comparing against the maintained counters.
func sumExpenses(tx *gorm.DB, currency string, forexOnly bool) (decimal.Decimal, error) {
	q := tx.Model(&models.Expense{}).Where("currency = ?", currency)
	if forexOnly {
		q = q.Where("payment_method = ?", models.PaymentForexCard)
	}
	var amounts []decimal.Decimal
	if err := q.Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
