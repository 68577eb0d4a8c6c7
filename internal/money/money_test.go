package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Rounding is half-up (half away from zero), pinned here because every derived
// monetary value in the system flows through Round2.
func TestRound2HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.346", "2.35"},
		{"1.005", "1.01"},
		{"0.004", "0"},
		{"0.005", "0.01"},
		{"-2.345", "-2.35"},
		{"-2.344", "-2.34"},
		{"100", "100"},
		{"3100.004999", "3100"},
	}

	for _, tc := range cases {
		got := Round2(decimal.RequireFromString(tc.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"Round2(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestRound2PreservesScaleInvariance(t *testing.T) {
	// 62 * 50 = 3100 exactly; rounding must not disturb it.
	product := decimal.RequireFromString("50").Mul(decimal.RequireFromString("62"))
	assert.True(t, Round2(product).Equal(decimal.RequireFromString("3100")))
}
