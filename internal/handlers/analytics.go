package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/services"
)

type AnalyticsHandler struct {
	service services.AnalyticsService
	logger  *zap.Logger
}

func NewAnalyticsHandler(service services.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, logger: logger}
}

func parseDateRange(r *http.Request) (start, end *time.Time, err error) {
	q := r.URL.Query()
	if s := q.Get("start_date"); s != "" {
		d, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, apperrors.Validation("start_date", "must be YYYY-MM-DD")
		}
		start = &d
	}
	if s := q.Get("end_date"); s != "" {
		d, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, apperrors.Validation("end_date", "must be YYYY-MM-DD")
		}
		end = &d
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, apperrors.Validation("start_date", "cannot be after end_date")
	}
	return start, end, nil
}

func parseAsOf(r *http.Request) (time.Time, error) {
	if s := r.URL.Query().Get("as_of"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, apperrors.Validation("as_of", "must be YYYY-MM-DD")
		}
		return d, nil
	}
	return time.Now(), nil
}

// DailyTotals handles GET /api/analytics/daily-totals.
func (h *AnalyticsHandler) DailyTotals(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	totals, err := h.service.DailyTotals(r.Context(), start, end)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// AverageDailySpend handles GET /api/analytics/average-daily-spend.
func (h *AnalyticsHandler) AverageDailySpend(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseAsOf(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	result, err := h.service.AverageDailySpend(r.Context(), asOf)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RemainingDailyBudget handles GET /api/analytics/remaining-daily-budget.
func (h *AnalyticsHandler) RemainingDailyBudget(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseAsOf(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	result, err := h.service.RemainingDailyBudget(r.Context(), asOf)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CurrencyBreakdown handles GET /api/analytics/currency-breakdown.
func (h *AnalyticsHandler) CurrencyBreakdown(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	items, err := h.service.CurrencyBreakdown(r.Context(), start, end)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CategoryBreakdown handles GET /api/analytics/category-breakdown.
func (h *AnalyticsHandler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	items, err := h.service.CategoryBreakdown(r.Context(), start, end)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Trend handles GET /api/analytics/trend.
func (h *AnalyticsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	points, err := h.service.Trend(r.Context(), start, end)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
