package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/deb007/travelbuddy/internal/money"
)

// Budget tracks a per-currency spending cap. SpentAmount is maintained solely
// by the expense service; MaxAmount is set by explicit configuration calls.
type Budget struct {
	Currency    string          `json:"currency" gorm:"primaryKey;column:currency;type:varchar(8)"`
	MaxAmount   decimal.Decimal `json:"max_amount" gorm:"column:max_amount;type:decimal(20,8);not null;default:0"`
	SpentAmount decimal.Decimal `json:"spent_amount" gorm:"column:spent_amount;type:decimal(20,8);not null;default:0"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Budget model.
func (Budget) TableName() string {
	return "budgets"
}

// BudgetStatus is the derived view of a budget row.
type BudgetStatus struct {
	Currency    string          `json:"currency"`
	MaxAmount   decimal.Decimal `json:"max_amount"`
	SpentAmount decimal.Decimal `json:"spent_amount"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percent_used"`
	AtEighty    bool            `json:"at_eighty"`
	AtNinety    bool            `json:"at_ninety"`
}

var (
	eightyPercent = decimal.NewFromInt(80)
	ninetyPercent = decimal.NewFromInt(90)
	hundred       = decimal.NewFromInt(100)
)

// Status derives remaining, percent used and threshold flags. Thresholds are
// inclusive: a budget at exactly 80% is flagged.
func (b *Budget) Status() BudgetStatus {
	remaining := b.MaxAmount.Sub(b.SpentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	// Threshold flags compare the exact ratio; rounding the displayed percent
	// first would flip a 79.999% budget over the 80% boundary.
	percentUsed := decimal.Zero
	if b.MaxAmount.IsPositive() {
		percentUsed = b.SpentAmount.Div(b.MaxAmount).Mul(hundred)
	}
	return BudgetStatus{
		Currency:    b.Currency,
		MaxAmount:   b.MaxAmount,
		SpentAmount: b.SpentAmount,
		Remaining:   money.Round2(remaining),
		PercentUsed: money.Round2(percentUsed),
		AtEighty:    b.MaxAmount.IsPositive() && percentUsed.GreaterThanOrEqual(eightyPercent),
		AtNinety:    b.MaxAmount.IsPositive() && percentUsed.GreaterThanOrEqual(ninetyPercent),
	}
}
