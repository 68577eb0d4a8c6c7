package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/deb007/travelbuddy/internal/money"
)

// ForexCard tracks a prepaid card balance in a foreign currency. SpentAmount
// is maintained solely by the expense service for forex-card expenses.
type ForexCard struct {
	Currency     string          `json:"currency" gorm:"primaryKey;column:currency;type:varchar(8)"`
	LoadedAmount decimal.Decimal `json:"loaded_amount" gorm:"column:loaded_amount;type:decimal(20,8);not null;default:0"`
	SpentAmount  decimal.Decimal `json:"spent_amount" gorm:"column:spent_amount;type:decimal(20,8);not null;default:0"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the ForexCard model.
func (ForexCard) TableName() string {
	return "forex_cards"
}

// ForexCardStatus is the derived view of a forex card row.
type ForexCardStatus struct {
	Currency         string          `json:"currency"`
	LoadedAmount     decimal.Decimal `json:"loaded_amount"`
	SpentAmount      decimal.Decimal `json:"spent_amount"`
	Remaining        decimal.Decimal `json:"remaining"`
	PercentRemaining decimal.Decimal `json:"percent_remaining"`
	LowBalance       bool            `json:"low_balance"`
}

var twentyPercent = decimal.NewFromInt(20)

// Status derives remaining balance and the low-balance flag. The low-balance
// boundary is exclusive: a card at exactly 20% remaining is not flagged.
// An unloaded card is never low.
func (c *ForexCard) Status() ForexCardStatus {
	remaining := c.LoadedAmount.Sub(c.SpentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	percentRemaining := decimal.Zero
	low := false
	if c.LoadedAmount.IsPositive() {
		percentRemaining = remaining.Div(c.LoadedAmount).Mul(hundred)
		low = percentRemaining.LessThan(twentyPercent)
	}
	return ForexCardStatus{
		Currency:         c.Currency,
		LoadedAmount:     c.LoadedAmount,
		SpentAmount:      c.SpentAmount,
		Remaining:        money.Round2(remaining),
		PercentRemaining: money.Round2(percentRemaining),
		LowBalance:       low,
	}
}
