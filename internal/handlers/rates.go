package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/config"
	"github.com/deb007/travelbuddy/internal/models"
	"github.com/deb007/travelbuddy/internal/services"
)

type RateHandler struct {
	resolver services.RateResolver
	cfg      *config.Config
	logger   *zap.Logger
}

func NewRateHandler(resolver services.RateResolver, cfg *config.Config, logger *zap.Logger) *RateHandler {
	return &RateHandler{resolver: resolver, cfg: cfg, logger: logger}
}

type overrideRequest struct {
	Currency   string          `json:"currency"`
	Rate       decimal.Decimal `json:"rate"`
	TTLSeconds int             `json:"ttl_seconds"`
}

// Current handles GET /api/rates: resolves every supported foreign currency.
func (h *RateHandler) Current(w http.ResponseWriter, r *http.Request) {
	rates := []models.ResolvedRate{}
	for _, currency := range h.cfg.Currencies {
		if currency == h.cfg.HomeCurrency {
			continue
		}
		rates = append(rates, h.resolver.Resolve(r.Context(), currency))
	}
	writeJSON(w, http.StatusOK, rates)
}

// ListOverrides handles GET /api/rates/overrides.
func (h *RateHandler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.resolver.ListOverrides(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, overrides)
}

// SetOverride handles POST /api/rates/overrides.
func (h *RateHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	if req.TTLSeconds == 0 {
		req.TTLSeconds = 900
	}
	override, err := h.resolver.SetOverride(r.Context(), req.Currency, req.Rate, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, override)
}

// ClearOverride handles DELETE /api/rates/overrides/{currency}.
func (h *RateHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	currency := mux.Vars(r)["currency"]
	if err := h.resolver.ClearOverride(r.Context(), currency); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "currency": currency})
}
