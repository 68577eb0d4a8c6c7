package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/services"
)

type ForexCardHandler struct {
	service services.ForexCardService
	logger  *zap.Logger
}

func NewForexCardHandler(service services.ForexCardService, logger *zap.Logger) *ForexCardHandler {
	return &ForexCardHandler{service: service, logger: logger}
}

type cardLoadRequest struct {
	LoadedAmount decimal.Decimal `json:"loaded_amount"`
}

// List handles GET /api/forex-cards.
func (h *ForexCardHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

// Get handles GET /api/forex-cards/{currency}.
func (h *ForexCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Get(r.Context(), mux.Vars(r)["currency"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// SetLoaded handles PUT /api/forex-cards/{currency}.
func (h *ForexCardHandler) SetLoaded(w http.ResponseWriter, r *http.Request) {
	var req cardLoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	status, err := h.service.SetLoaded(r.Context(), mux.Vars(r)["currency"], req.LoadedAmount)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
