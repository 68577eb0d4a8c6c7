package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/config"
	"github.com/deb007/travelbuddy/internal/db"
	"github.com/deb007/travelbuddy/internal/models"
)

type forexCardService struct {
	db  *db.DB
	cfg *config.Config
}

// NewForexCardService creates the forex card configuration and read service.
func NewForexCardService(database *db.DB, cfg *config.Config) ForexCardService {
	return &forexCardService{db: database, cfg: cfg}
}

// SetLoaded sets (or replaces) the loaded amount for a card, creating the row
// if needed. Only currencies in the forex set can carry a card.
func (s *forexCardService) SetLoaded(ctx context.Context, currency string, loaded decimal.Decimal) (*models.ForexCardStatus, error) {
	currency = strings.ToUpper(currency)
	if !s.cfg.SupportsForexCard(currency) {
		return nil, apperrors.Validation("currency", "unsupported forex currency")
	}
	if loaded.IsNegative() {
		return nil, apperrors.Validation("loaded_amount", "must be non-negative")
	}

	card := models.ForexCard{Currency: currency, LoadedAmount: loaded, SpentAmount: decimal.Zero}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"loaded_amount"}),
	}).Create(&card).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, currency)
}

// Get returns the derived status for one card.
func (s *forexCardService) Get(ctx context.Context, currency string) (*models.ForexCardStatus, error) {
	currency = strings.ToUpper(currency)
	var card models.ForexCard
	err := s.db.WithContext(ctx).First(&card, "currency = ?", currency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("forex card", currency)
	}
	if err != nil {
		return nil, err
	}
	status := card.Status()
	return &status, nil
}

// List returns statuses for all configured cards ordered by currency.
func (s *forexCardService) List(ctx context.Context) ([]*models.ForexCardStatus, error) {
	var cards []*models.ForexCard
	if err := s.db.WithContext(ctx).Order("currency").Find(&cards).Error; err != nil {
		return nil, err
	}
	statuses := make([]*models.ForexCardStatus, 0, len(cards))
	for _, c := range cards {
		status := c.Status()
		statuses = append(statuses, &status)
	}
	return statuses, nil
}
