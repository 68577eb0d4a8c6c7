package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/db"
	"github.com/deb007/travelbuddy/internal/models"
)

type tripService struct {
	db *db.DB
}

// NewTripService creates the trip date service.
func NewTripService(database *db.DB) TripService {
	return &tripService{db: database}
}

// SetDates stores the global trip date range.
func (s *tripService) SetDates(ctx context.Context, start, end time.Time) (*models.TripSetting, error) {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return nil, apperrors.Validation("end_date", "cannot be before start_date")
	}

	trip := models.TripSetting{ID: 1, StartDate: start, EndDate: end}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_date", "end_date"}),
	}).Create(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// Get returns the configured trip dates, or nil if none are set yet.
func (s *tripService) Get(ctx context.Context) (*models.TripSetting, error) {
	var trip models.TripSetting
	err := s.db.WithContext(ctx).First(&trip, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// Phase classifies a date against the trip start. With no trip configured
// everything counts as trip, which keeps early logging usable.
func (s *tripService) Phase(ctx context.Context, date time.Time) (models.Phase, error) {
	trip, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	if trip == nil {
		return models.PhaseTrip, nil
	}
	return trip.PhaseOf(dateOnly(date)), nil
}
