package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/deb007/travelbuddy/internal/config"
	"github.com/deb007/travelbuddy/internal/db"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Connect(filepath.Join(t.TempDir(), "test.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func testConfig() *config.Config {
	return &config.Config{
		HomeCurrency:    "INR",
		Currencies:      []string{"INR", "SGD", "MYR"},
		ForexCurrencies: []string{"SGD", "MYR"},
		Categories: []string{
			"food", "transport", "accommodation", "activities", "shopping", "misc",
		},
		RateCacheTTL: time.Hour,
		FallbackRates: map[string]decimal.Decimal{
			"INR": decimal.NewFromInt(1),
			"SGD": decimal.NewFromInt(62),
			"MYR": decimal.NewFromInt(18),
		},
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fxStub is a canned FXProvider. Rates are quoted the way the resolver expects
// them: home-currency units per 1 unit of quote.
type fxStub struct {
	rates map[string]decimal.Decimal
	err   error
	calls int
}

func (s *fxStub) FetchRates(_ context.Context, _ string, quotes []string) (map[string]decimal.Decimal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]decimal.Decimal, len(quotes))
	for _, q := range quotes {
		if v, ok := s.rates[q]; ok {
			out[q] = v
		}
	}
	return out, nil
}
