package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/config"
	"github.com/deb007/travelbuddy/internal/db"
	"github.com/deb007/travelbuddy/internal/models"
	"github.com/deb007/travelbuddy/internal/services"
)

// newTestRouter assembles the real service stack over a throwaway database.
// No FX provider is wired, so foreign rates come from the static fallback
// table.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	database, err := db.Connect(filepath.Join(t.TempDir(), "test.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	cfg := &config.Config{
		HomeCurrency:    "INR",
		Currencies:      []string{"INR", "SGD", "MYR"},
		ForexCurrencies: []string{"SGD", "MYR"},
		Categories: []string{
			"food", "transport", "accommodation", "activities", "shopping", "misc",
		},
	}
	logger := zap.NewNop()

	resolver := services.NewRateResolver(database, cfg, nil, logger)
	expenses := services.NewExpenseService(database, cfg, resolver, logger)
	budgets := services.NewBudgetService(database, cfg)
	cards := services.NewForexCardService(database, cfg)

	expenseHandler := NewExpenseHandler(expenses, logger)
	budgetHandler := NewBudgetHandler(budgets, logger)
	forexHandler := NewForexCardHandler(cards, logger)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/expenses", expenseHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/expenses", expenseHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/expenses/{id}", expenseHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}", expenseHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/expenses/{id}", expenseHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/budgets/{currency}", budgetHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/budgets/{currency}", budgetHandler.SetCap).Methods(http.MethodPut)
	api.HandleFunc("/forex-cards/{currency}", forexHandler.SetLoaded).Methods(http.MethodPut)
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateExpenseEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/expenses", map[string]interface{}{
		"amount":         "50",
		"currency":       "SGD",
		"category":       "food",
		"date":           "2026-03-08",
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var expense models.Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expense))
	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, "SGD", expense.Currency)
	assert.True(t, expense.HomeEquivalent.IsPositive())

	// The budget row shows up with the spend applied.
	rec = doJSON(t, router, http.MethodGet, "/api/budgets/SGD", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var budget models.BudgetStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &budget))
	assert.True(t, budget.SpentAmount.Equal(expense.Amount))
}

func TestCreateExpenseBadDate(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/expenses", map[string]interface{}{
		"amount":         "50",
		"currency":       "SGD",
		"category":       "food",
		"date":           "08/03/2026",
		"payment_method": "cash",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestCreateExpenseValidationStatus(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/expenses", map[string]interface{}{
		"amount":         "50",
		"currency":       "USD",
		"category":       "food",
		"date":           "2026-03-08",
		"payment_method": "cash",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateExpenseCurrencyConflict(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/expenses", map[string]interface{}{
		"amount":         "50",
		"currency":       "SGD",
		"category":       "food",
		"date":           "2026-03-08",
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var expense models.Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expense))

	rec = doJSON(t, router, http.MethodPatch, "/api/expenses/"+expense.ID, map[string]interface{}{
		"currency": "MYR",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "immutable_field")
}

func TestExpenseNotFoundStatus(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/expenses/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestDeleteExpenseEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/forex-cards/SGD", map[string]interface{}{
		"loaded_amount": "200",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/expenses", map[string]interface{}{
		"amount":         "50",
		"currency":       "SGD",
		"category":       "shopping",
		"date":           "2026-03-08",
		"payment_method": "forex-card",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var expense models.Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expense))

	rec = doJSON(t, router, http.MethodDelete, "/api/expenses/"+expense.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/expenses/"+expense.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
