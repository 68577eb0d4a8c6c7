package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where a resolved exchange rate came from.
type RateSource string

const (
	RateSourceHome     RateSource = "home"
	RateSourceOverride RateSource = "override"
	RateSourceCache    RateSource = "cache"
	RateSourceFetched  RateSource = "fetched"
	RateSourceFallback RateSource = "static-fallback"
)

// ExchangeRate is a cached upstream rate (home currency per 1 unit of quote).
// Freshness is evaluated against the configured TTL at resolution time.
type ExchangeRate struct {
	ID            uint            `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	BaseCurrency  string          `json:"base_currency" gorm:"column:base_currency;type:varchar(8);not null;uniqueIndex:idx_rate_pair"`
	QuoteCurrency string          `json:"quote_currency" gorm:"column:quote_currency;type:varchar(8);not null;uniqueIndex:idx_rate_pair"`
	Rate          decimal.Decimal `json:"rate" gorm:"column:rate;type:decimal(20,8);not null"`
	FetchedAt     time.Time       `json:"fetched_at" gorm:"column:fetched_at;not null"`
}

// TableName returns the table name for the ExchangeRate model.
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}

// Fresh reports whether the entry is younger than ttl at the given instant.
func (e *ExchangeRate) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}

// RateOverride is an administrator-supplied rate that takes precedence over
// cached and fetched rates until it expires.
type RateOverride struct {
	Currency  string          `json:"currency" gorm:"primaryKey;column:currency;type:varchar(8)"`
	Rate      decimal.Decimal `json:"rate" gorm:"column:rate;type:decimal(20,8);not null"`
	ExpiresAt time.Time       `json:"expires_at" gorm:"column:expires_at;not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the RateOverride model.
func (RateOverride) TableName() string {
	return "rate_overrides"
}

// Active reports whether the override is still in force at the given instant.
func (o *RateOverride) Active(now time.Time) bool {
	return now.Before(o.ExpiresAt)
}

// ResolvedRate is the result of a rate resolution.
type ResolvedRate struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
	Source   RateSource      `json:"source"`
}
