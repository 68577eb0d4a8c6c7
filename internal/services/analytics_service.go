package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/deb007/travelbuddy/internal/config"
	"github.com/deb007/travelbuddy/internal/db"
	"github.com/deb007/travelbuddy/internal/models"
	"github.com/deb007/travelbuddy/internal/money"
)

type analyticsService struct {
	db  *db.DB
	cfg *config.Config
}

// NewAnalyticsService creates the read-only analytics projections. These never
// mutate ledgers and are recomputed per request.
func NewAnalyticsService(database *db.DB, cfg *config.Config) AnalyticsService {
	return &analyticsService{db: database, cfg: cfg}
}

func (s *analyticsService) expenseRange(ctx context.Context, start, end *time.Time) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Expense{})
	if start != nil {
		q = q.Where("date >= ?", dateOnly(*start))
	}
	if end != nil {
		q = q.Where("date <= ?", dateOnly(*end))
	}
	return q
}

// DailyTotals sums home-currency equivalents per day, ascending by date.
func (s *analyticsService) DailyTotals(ctx context.Context, start, end *time.Time) ([]models.DailyTotal, error) {
	var rows []struct {
		Date  time.Time
		Total decimal.Decimal
	}
	err := s.expenseRange(ctx, start, end).
		Select("date, SUM(home_equivalent) AS total").
		Group("date").Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make([]models.DailyTotal, 0, len(rows))
	for _, r := range rows {
		totals = append(totals, models.DailyTotal{Date: r.Date, Total: money.Round2(r.Total)})
	}
	return totals, nil
}

// AverageDailySpend divides total spend by the inclusive day span from the
// earliest expense through asOf. Zero result when there are no expenses yet
// (or the earliest expense is after asOf).
func (s *analyticsService) AverageDailySpend(ctx context.Context, asOf time.Time) (*models.AverageDailySpend, error) {
	asOf = dateOnly(asOf)

	var first models.Expense
	err := s.db.WithContext(ctx).Order("date ASC").First(&first).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.AverageDailySpend{Total: decimal.Zero, Average: decimal.Zero}, nil
		}
		return nil, err
	}
	earliest := dateOnly(first.Date)
	if earliest.After(asOf) {
		return &models.AverageDailySpend{Total: decimal.Zero, Average: decimal.Zero}, nil
	}

	var total decimal.Decimal
	err = s.db.WithContext(ctx).Model(&models.Expense{}).
		Select("COALESCE(SUM(home_equivalent), 0)").Scan(&total).Error
	if err != nil {
		return nil, err
	}

	days := int(asOf.Sub(earliest).Hours()/24) + 1
	avg := decimal.Zero
	if total.IsPositive() {
		avg = money.Round2(total.Div(decimal.NewFromInt(int64(days))))
	}
	return &models.AverageDailySpend{
		Total:       money.Round2(total),
		DaysElapsed: days,
		Average:     avg,
	}, nil
}

// RemainingDailyBudget spreads the home budget's remaining amount over the
// days left in the trip (asOf through trip end, inclusive). Zero once the
// trip has ended, no trip is configured, or the budget is exhausted.
func (s *analyticsService) RemainingDailyBudget(ctx context.Context, asOf time.Time) (*models.RemainingDailyBudget, error) {
	asOf = dateOnly(asOf)
	zero := &models.RemainingDailyBudget{Remaining: decimal.Zero, PerDay: decimal.Zero}

	var trip models.TripSetting
	if err := s.db.WithContext(ctx).First(&trip, "id = ?", 1).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return zero, nil
		}
		return nil, err
	}
	daysLeft := trip.DaysLeft(asOf)
	if daysLeft == 0 {
		return zero, nil
	}

	var budget models.Budget
	if err := s.db.WithContext(ctx).First(&budget, "currency = ?", s.cfg.HomeCurrency).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.RemainingDailyBudget{Remaining: decimal.Zero, DaysLeft: daysLeft, PerDay: decimal.Zero}, nil
		}
		return nil, err
	}
	remaining := budget.Status().Remaining
	if !remaining.IsPositive() {
		return &models.RemainingDailyBudget{Remaining: decimal.Zero, DaysLeft: daysLeft, PerDay: decimal.Zero}, nil
	}
	return &models.RemainingDailyBudget{
		Remaining: remaining,
		DaysLeft:  daysLeft,
		PerDay:    money.Round2(remaining.Div(decimal.NewFromInt(int64(daysLeft)))),
	}, nil
}

// CurrencyBreakdown totals per transaction currency, with each currency's
// share of the overall home-currency spend. Shares are zero when the grand
// total is zero.
func (s *analyticsService) CurrencyBreakdown(ctx context.Context, start, end *time.Time) ([]models.CurrencyBreakdownItem, error) {
	var rows []struct {
		Currency    string
		AmountTotal decimal.Decimal
		HomeTotal   decimal.Decimal
	}
	err := s.expenseRange(ctx, start, end).
		Select("currency, SUM(amount) AS amount_total, SUM(home_equivalent) AS home_total").
		Group("currency").Order("currency").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grand := decimal.Zero
	for _, r := range rows {
		grand = grand.Add(r.HomeTotal)
	}
	items := make([]models.CurrencyBreakdownItem, 0, len(rows))
	for _, r := range rows {
		percent := decimal.Zero
		if grand.IsPositive() {
			percent = money.Round2(r.HomeTotal.Div(grand).Mul(decimal.NewFromInt(100)))
		}
		items = append(items, models.CurrencyBreakdownItem{
			Currency:    r.Currency,
			AmountTotal: money.Round2(r.AmountTotal),
			HomeTotal:   money.Round2(r.HomeTotal),
			Percent:     percent,
		})
	}
	return items, nil
}

// CategoryBreakdown totals per category, largest first, with percent of the
// grand total.
func (s *analyticsService) CategoryBreakdown(ctx context.Context, start, end *time.Time) ([]models.CategoryBreakdownItem, error) {
	var rows []struct {
		Category  string
		HomeTotal decimal.Decimal
	}
	err := s.expenseRange(ctx, start, end).
		Select("category, SUM(home_equivalent) AS home_total").
		Group("category").Order("home_total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grand := decimal.Zero
	for _, r := range rows {
		grand = grand.Add(r.HomeTotal)
	}
	items := make([]models.CategoryBreakdownItem, 0, len(rows))
	for _, r := range rows {
		percent := decimal.Zero
		if grand.IsPositive() {
			percent = money.Round2(r.HomeTotal.Div(grand).Mul(decimal.NewFromInt(100)))
		}
		items = append(items, models.CategoryBreakdownItem{
			Category:  r.Category,
			HomeTotal: money.Round2(r.HomeTotal),
			Percent:   percent,
		})
	}
	return items, nil
}

// Trend returns daily totals plus a running cumulative sum for charting.
func (s *analyticsService) Trend(ctx context.Context, start, end *time.Time) ([]models.TrendPoint, error) {
	totals, err := s.DailyTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	cumulative := decimal.Zero
	points := make([]models.TrendPoint, 0, len(totals))
	for _, t := range totals {
		cumulative = cumulative.Add(t.Total)
		points = append(points, models.TrendPoint{
			Date:       t.Date,
			DailyTotal: t.Total,
			Cumulative: money.Round2(cumulative),
		})
	}
	return points, nil
}
