package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/config"
	"github.com/deb007/travelbuddy/internal/db"
	"github.com/deb007/travelbuddy/internal/models"
)

type rateResolver struct {
	db       *db.DB
	cfg      *config.Config
	provider FXProvider
	logger   *zap.Logger
	now      func() time.Time
}

// NewRateResolver creates a rate resolver. The provider may be nil, in which
// case stale cache entries degrade straight to the static fallback table.
func NewRateResolver(database *db.DB, cfg *config.Config, provider FXProvider, logger *zap.Logger) RateResolver {
	return &rateResolver{
		db:       database,
		cfg:      cfg,
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolve returns the home-currency rate for a currency. Precedence: home
// currency short-circuits to 1.0, then an unexpired override, then a fresh
// cache entry, then an upstream fetch (cached on success), then the static
// fallback. Expiry and TTL are evaluated here, not swept in the background.
func (s *rateResolver) Resolve(ctx context.Context, currency string) models.ResolvedRate {
	currency = strings.ToUpper(currency)

	if currency == s.cfg.HomeCurrency {
		return models.ResolvedRate{
			Currency: currency,
			Rate:     decimal.NewFromInt(1),
			Source:   models.RateSourceHome,
		}
	}

	now := s.now()

	if ov, err := s.getOverride(ctx, currency); err != nil {
		s.logger.Warn("override lookup failed", zap.String("currency", currency), zap.Error(err))
	} else if ov != nil && ov.Active(now) {
		return models.ResolvedRate{Currency: currency, Rate: ov.Rate, Source: models.RateSourceOverride}
	}

	if entry, err := s.getCached(ctx, currency); err != nil {
		s.logger.Warn("rate cache lookup failed", zap.String("currency", currency), zap.Error(err))
	} else if entry != nil && entry.Fresh(now, s.cfg.RateCacheTTL) {
		return models.ResolvedRate{Currency: currency, Rate: entry.Rate, Source: models.RateSourceCache}
	}

	if s.provider != nil {
		if rate, ok := s.fetchAndCache(ctx, currency); ok {
			return models.ResolvedRate{Currency: currency, Rate: rate, Source: models.RateSourceFetched}
		}
	}

	return models.ResolvedRate{
		Currency: currency,
		Rate:     s.cfg.FallbackRate(currency),
		Source:   models.RateSourceFallback,
	}
}

func (s *rateResolver) getOverride(ctx context.Context, currency string) (*models.RateOverride, error) {
	var ov models.RateOverride
	err := s.db.WithContext(ctx).First(&ov, "currency = ?", currency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

func (s *rateResolver) getCached(ctx context.Context, currency string) (*models.ExchangeRate, error) {
	var entry models.ExchangeRate
	err := s.db.WithContext(ctx).
		First(&entry, "base_currency = ? AND quote_currency = ?", s.cfg.HomeCurrency, currency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *rateResolver) fetchAndCache(ctx context.Context, currency string) (decimal.Decimal, bool) {
	rates, err := s.provider.FetchRates(ctx, s.cfg.HomeCurrency, []string{currency})
	if err != nil {
		s.logger.Warn("upstream rate fetch failed, degrading to fallback",
			zap.String("currency", currency), zap.Error(err))
		return decimal.Zero, false
	}
	rate, ok := rates[currency]
	if !ok {
		s.logger.Warn("upstream response missing currency", zap.String("currency", currency))
		return decimal.Zero, false
	}

	entry := models.ExchangeRate{
		BaseCurrency:  s.cfg.HomeCurrency,
		QuoteCurrency: currency,
		Rate:          rate,
		FetchedAt:     s.now(),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base_currency"}, {Name: "quote_currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "fetched_at"}),
	}).Create(&entry).Error
	if err != nil {
		// Caching failure is not fatal; the fetched rate is still usable.
		s.logger.Warn("failed to cache fetched rate", zap.String("currency", currency), zap.Error(err))
	}
	return rate, true
}

// SetOverride stores a manual rate that wins over cache and fetch until ttl
// elapses.
func (s *rateResolver) SetOverride(ctx context.Context, currency string, rate decimal.Decimal, ttl time.Duration) (*models.RateOverride, error) {
	currency = strings.ToUpper(currency)
	if currency == s.cfg.HomeCurrency {
		return nil, apperrors.Validation("currency", "cannot override the home currency rate")
	}
	if !s.cfg.SupportsCurrency(currency) {
		return nil, apperrors.Validation("currency", "unsupported currency")
	}
	if !rate.IsPositive() {
		return nil, apperrors.Validation("rate", "must be positive")
	}
	if ttl <= 0 {
		return nil, apperrors.Validation("ttl", "must be positive")
	}

	ov := models.RateOverride{
		Currency:  currency,
		Rate:      rate,
		ExpiresAt: s.now().Add(ttl),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "expires_at"}),
	}).Create(&ov).Error
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

// ListOverrides returns overrides still in force; expired rows are pruned.
func (s *rateResolver) ListOverrides(ctx context.Context) ([]*models.RateOverride, error) {
	now := s.now()
	if err := s.db.WithContext(ctx).Delete(&models.RateOverride{}, "expires_at <= ?", now).Error; err != nil {
		return nil, err
	}
	var overrides []*models.RateOverride
	if err := s.db.WithContext(ctx).Order("currency").Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

// ClearOverride removes an override; unknown currencies are a not-found error.
func (s *rateResolver) ClearOverride(ctx context.Context, currency string) error {
	currency = strings.ToUpper(currency)
	res := s.db.WithContext(ctx).Delete(&models.RateOverride{}, "currency = ?", currency)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("rate override", currency)
	}
	return nil
}
