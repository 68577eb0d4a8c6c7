// Package money centralizes rounding so derived amounts use identical
// semantics everywhere (equivalents, remaining budgets, analytics totals).
package money

import "github.com/shopspring/decimal"

// Round2 rounds to 2 fractional digits using half-up (half away from zero).
// It is applied to every derived monetary value, never to raw input amounts.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
