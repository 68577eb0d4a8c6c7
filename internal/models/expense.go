package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted for an expense.
const (
	PaymentCash      = "cash"
	PaymentForexCard = "forex-card"
	PaymentOtherCard = "other-card"
)

// Expense represents a single logged expense. HomeEquivalent and ExchangeRate
// are computed by the expense service at create/update time; the currency is
// immutable once the row exists.
type Expense struct {
	ID             string          `json:"id" gorm:"primaryKey;column:id;type:varchar(64)"`
	Amount         decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(20,8);not null"`
	Currency       string          `json:"currency" gorm:"column:currency;type:varchar(8);not null;index"`
	Category       string          `json:"category" gorm:"column:category;type:varchar(32);not null;index"`
	Description    *string         `json:"description" gorm:"column:description;type:text"`
	Date           time.Time       `json:"date" gorm:"column:date;type:date;not null;index"`
	PaymentMethod  string          `json:"payment_method" gorm:"column:payment_method;type:varchar(16);not null"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate" gorm:"column:exchange_rate;type:decimal(20,8);not null"`
	HomeEquivalent decimal.Decimal `json:"home_equivalent" gorm:"column:home_equivalent;type:decimal(20,8);not null"`
	RateSource     string          `json:"rate_source" gorm:"column:rate_source;type:varchar(24)"`
	CreatedAt      time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Expense model.
func (Expense) TableName() string {
	return "expenses"
}

// ExpenseFilter narrows expense list queries.
type ExpenseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Currency  string
	Category  string
	Limit     int
	Offset    int
}

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentForexCard || m == PaymentOtherCard
}
