package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deb007/travelbuddy/internal/models"
)

// ExpenseService is the write path for expenses. Every operation keeps the
// expense row, its budget ledger and (for forex-card payments) the card ledger
// consistent within a single store transaction.
type ExpenseService interface {
	Create(ctx context.Context, in CreateExpenseInput) (*models.Expense, error)
	Update(ctx context.Context, id string, patch ExpensePatch) (*models.Expense, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Expense, error)
	List(ctx context.Context, filter *models.ExpenseFilter) ([]*models.Expense, error)
	Reconcile(ctx context.Context) (*ReconcileReport, error)
}

// RateResolver resolves a home-currency exchange rate for a currency. Resolve
// never fails: on upstream trouble it degrades to the static fallback table.
type RateResolver interface {
	Resolve(ctx context.Context, currency string) models.ResolvedRate
	SetOverride(ctx context.Context, currency string, rate decimal.Decimal, ttl time.Duration) (*models.RateOverride, error)
	ListOverrides(ctx context.Context) ([]*models.RateOverride, error)
	ClearOverride(ctx context.Context, currency string) error
}

// FXProvider fetches upstream exchange rates, expressed as home-currency units
// per 1 unit of each quote currency. Failure is an error value; the resolver
// decides how to degrade.
type FXProvider interface {
	FetchRates(ctx context.Context, base string, quotes []string) (map[string]decimal.Decimal, error)
}

// BudgetService owns budget caps and read-side status. Spent counters are
// written only by the ExpenseService.
type BudgetService interface {
	SetCap(ctx context.Context, currency string, cap decimal.Decimal) (*models.BudgetStatus, error)
	Get(ctx context.Context, currency string) (*models.BudgetStatus, error)
	List(ctx context.Context) ([]*models.BudgetStatus, error)
}

// ForexCardService owns card loaded amounts and read-side status. Spent
// counters are written only by the ExpenseService.
type ForexCardService interface {
	SetLoaded(ctx context.Context, currency string, loaded decimal.Decimal) (*models.ForexCardStatus, error)
	Get(ctx context.Context, currency string) (*models.ForexCardStatus, error)
	List(ctx context.Context) ([]*models.ForexCardStatus, error)
}

// TripService owns the global trip date range and phase classification.
type TripService interface {
	SetDates(ctx context.Context, start, end time.Time) (*models.TripSetting, error)
	Get(ctx context.Context) (*models.TripSetting, error)
	Phase(ctx context.Context, date time.Time) (models.Phase, error)
}

// AnalyticsService provides read-only projections over stored expenses.
type AnalyticsService interface {
	DailyTotals(ctx context.Context, start, end *time.Time) ([]models.DailyTotal, error)
	AverageDailySpend(ctx context.Context, asOf time.Time) (*models.AverageDailySpend, error)
	RemainingDailyBudget(ctx context.Context, asOf time.Time) (*models.RemainingDailyBudget, error)
	CurrencyBreakdown(ctx context.Context, start, end *time.Time) ([]models.CurrencyBreakdownItem, error)
	CategoryBreakdown(ctx context.Context, start, end *time.Time) ([]models.CategoryBreakdownItem, error)
	Trend(ctx context.Context, start, end *time.Time) ([]models.TrendPoint, error)
}

// AlertService aggregates budget threshold and forex low-balance warnings.
type AlertService interface {
	Collect(ctx context.Context) ([]models.Alert, error)
}
