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

type BudgetHandler struct {
	service services.BudgetService
	logger  *zap.Logger
}

func NewBudgetHandler(service services.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{service: service, logger: logger}
}

type budgetCapRequest struct {
	MaxAmount decimal.Decimal `json:"max_amount"`
}

// List handles GET /api/budgets.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

// Get handles GET /api/budgets/{currency}.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Get(r.Context(), mux.Vars(r)["currency"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// SetCap handles PUT /api/budgets/{currency}.
func (h *BudgetHandler) SetCap(w http.ResponseWriter, r *http.Request) {
	var req budgetCapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	status, err := h.service.SetCap(r.Context(), mux.Vars(r)["currency"], req.MaxAmount)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
