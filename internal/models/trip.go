package models

import "time"

// Phase classifies a date relative to the configured trip start.
type Phase string

const (
	PhasePreTrip Phase = "pre-trip"
	PhaseTrip    Phase = "trip"
)

// TripSetting holds the single global trip date range. Exactly one row (ID 1)
// exists once dates are configured.
type TripSetting struct {
	ID        uint      `json:"-" gorm:"primaryKey;column:id"`
	StartDate time.Time `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `json:"end_date" gorm:"column:end_date;type:date;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the TripSetting model.
func (TripSetting) TableName() string {
	return "trip_settings"
}

// PhaseOf classifies d: strictly before the start date is pre-trip, everything
// else is trip.
func (t *TripSetting) PhaseOf(d time.Time) Phase {
	if d.Before(dateOnly(t.StartDate)) {
		return PhasePreTrip
	}
	return PhaseTrip
}

// DaysLeft returns calendar days from asOf through the trip end, inclusive.
// Zero once the trip has ended.
func (t *TripSetting) DaysLeft(asOf time.Time) int {
	end := dateOnly(t.EndDate)
	day := dateOnly(asOf)
	if day.After(end) {
		return 0
	}
	return int(end.Sub(day).Hours()/24) + 1
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
