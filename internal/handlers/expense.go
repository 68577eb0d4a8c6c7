package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/models"
	"github.com/deb007/travelbuddy/internal/services"
)

type ExpenseHandler struct {
	service services.ExpenseService
	logger  *zap.Logger
}

func NewExpenseHandler(service services.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{service: service, logger: logger}
}

type expenseCreateRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Category      string          `json:"category"`
	Description   *string         `json:"description"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method"`
}

type expensePatchRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Date          *string          `json:"date"`
	PaymentMethod *string          `json:"payment_method"`
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req expenseCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, h.logger, apperrors.Validation("date", "must be YYYY-MM-DD"))
		return
	}

	expense, err := h.service.Create(r.Context(), services.CreateExpenseInput{
		Amount:        req.Amount,
		Currency:      req.Currency,
		Category:      req.Category,
		Description:   req.Description,
		Date:          date,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// List handles GET /api/expenses with optional filters.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &models.ExpenseFilter{}
	q := r.URL.Query()

	if s := q.Get("start_date"); s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			filter.StartDate = &d
		}
	}
	if s := q.Get("end_date"); s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			filter.EndDate = &d
		}
	}
	filter.Currency = q.Get("currency")
	filter.Category = q.Get("category")
	if s := q.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Limit = n
		}
	}
	if s := q.Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Offset = n
		}
	}

	expenses, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// Get handles GET /api/expenses/{id}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	expense, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Update handles PATCH/PUT /api/expenses/{id} with a partial body.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req expensePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	patch := services.ExpensePatch{
		Amount:        req.Amount,
		Currency:      req.Currency,
		Category:      req.Category,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	}
	if req.Date != nil {
		d, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			writeError(w, h.logger, apperrors.Validation("date", "must be YYYY-MM-DD"))
			return
		}
		patch.Date = &d
	}

	expense, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Delete handles DELETE /api/expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// Reconcile handles POST /api/admin/reconcile.
func (h *ExpenseHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Reconcile(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
