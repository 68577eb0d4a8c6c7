package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyTotal is the summed home-currency spend for one calendar day.
type DailyTotal struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// AverageDailySpend covers the span from the earliest expense day through the
// as-of day, inclusive.
type AverageDailySpend struct {
	Total       decimal.Decimal `json:"total"`
	DaysElapsed int             `json:"days_elapsed"`
	Average     decimal.Decimal `json:"average_daily_spend"`
}

// RemainingDailyBudget divides the remaining home budget over the days left in
// the trip, inclusive of the as-of day and the trip end.
type RemainingDailyBudget struct {
	Remaining decimal.Decimal `json:"remaining"`
	DaysLeft  int             `json:"days_left"`
	PerDay    decimal.Decimal `json:"remaining_daily_budget"`
}

// CurrencyBreakdownItem is a per-currency total with its share of the overall
// home-currency spend.
type CurrencyBreakdownItem struct {
	Currency    string          `json:"currency"`
	AmountTotal decimal.Decimal `json:"amount_total"`
	HomeTotal   decimal.Decimal `json:"home_total"`
	Percent     decimal.Decimal `json:"percent"`
}

// CategoryBreakdownItem is a per-category home-currency total with its share
// of the grand total.
type CategoryBreakdownItem struct {
	Category  string          `json:"category"`
	HomeTotal decimal.Decimal `json:"home_total"`
	Percent   decimal.Decimal `json:"percent"`
}

// TrendPoint is a daily total plus the running cumulative spend, for charting.
type TrendPoint struct {
	Date       time.Time       `json:"date"`
	DailyTotal decimal.Decimal `json:"daily_total"`
	Cumulative decimal.Decimal `json:"cumulative_total"`
}

// Alert is a uniform warning produced from budget and forex card state.
type Alert struct {
	Type     string `json:"type"`     // "budget" | "forex"
	Currency string `json:"currency"`
	Level    string `json:"level"`    // "warn" | "danger"
	Message  string `json:"message"`
}
