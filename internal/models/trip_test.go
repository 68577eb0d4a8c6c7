package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTripPhaseOf(t *testing.T) {
	trip := TripSetting{StartDate: day("2026-03-01"), EndDate: day("2026-03-14")}

	assert.Equal(t, PhasePreTrip, trip.PhaseOf(day("2026-02-28")))
	assert.Equal(t, PhaseTrip, trip.PhaseOf(day("2026-03-01")))
	assert.Equal(t, PhaseTrip, trip.PhaseOf(day("2026-03-10")))
	// Dates after the end still classify as trip; phase only looks at the start.
	assert.Equal(t, PhaseTrip, trip.PhaseOf(day("2026-04-01")))
}

func TestTripDaysLeft(t *testing.T) {
	trip := TripSetting{StartDate: day("2026-03-01"), EndDate: day("2026-03-14")}

	assert.Equal(t, 14, trip.DaysLeft(day("2026-03-01")))
	assert.Equal(t, 5, trip.DaysLeft(day("2026-03-10")))
	assert.Equal(t, 1, trip.DaysLeft(day("2026-03-14")))
	assert.Equal(t, 0, trip.DaysLeft(day("2026-03-15")))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentCash))
	assert.True(t, ValidPaymentMethod(PaymentForexCard))
	assert.True(t, ValidPaymentMethod(PaymentOtherCard))
	assert.False(t, ValidPaymentMethod("credit"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestExchangeRateFresh(t *testing.T) {
	now := day("2026-03-10")
	entry := ExchangeRate{FetchedAt: now.Add(-30 * time.Minute)}

	assert.True(t, entry.Fresh(now, time.Hour))
	assert.False(t, entry.Fresh(now, 30*time.Minute))
}

func TestRateOverrideActive(t *testing.T) {
	now := day("2026-03-10")
	ov := RateOverride{ExpiresAt: now.Add(time.Hour)}

	assert.True(t, ov.Active(now))
	assert.False(t, ov.Active(now.Add(time.Hour)))
	assert.False(t, ov.Active(now.Add(2*time.Hour)))
}
