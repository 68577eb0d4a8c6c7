package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/config"
	"github.com/deb007/travelbuddy/internal/db"
	"github.com/deb007/travelbuddy/internal/handlers"
	"github.com/deb007/travelbuddy/internal/logger"
	"github.com/deb007/travelbuddy/internal/services"
)

func main() {
	zlog, err := logger.New()
	if err != nil {
		log.Fatal("failed to init logger:", err)
	}
	defer zlog.Sync()

	cfg := config.Load()

	database, err := db.Connect(cfg.DBPath)
	if err != nil {
		zlog.Fatal("failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		zlog.Fatal("database health check failed", zap.Error(err))
	}
	zlog.Info("database ready", zap.String("path", cfg.DBPath))

	// Services
	provider := services.NewHTTPFXProvider(cfg.ProviderURL, cfg.FetchTimeout, cfg.FetchRetries, cfg.FetchBackoff)
	resolver := services.NewRateResolver(database, cfg, provider, zlog)
	expenseService := services.NewExpenseService(database, cfg, resolver, zlog)
	budgetService := services.NewBudgetService(database, cfg)
	forexService := services.NewForexCardService(database, cfg)
	tripService := services.NewTripService(database)
	analyticsService := services.NewAnalyticsService(database, cfg)
	alertService := services.NewAlertService(budgetService, forexService)

	// Handlers
	expenseHandler := handlers.NewExpenseHandler(expenseService, zlog)
	budgetHandler := handlers.NewBudgetHandler(budgetService, zlog)
	forexHandler := handlers.NewForexCardHandler(forexService, zlog)
	rateHandler := handlers.NewRateHandler(resolver, cfg, zlog)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, zlog)
	tripHandler := handlers.NewTripHandler(tripService, zlog)
	alertHandler := handlers.NewAlertHandler(alertService, zlog)

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"travelbuddy"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/expenses", expenseHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/expenses", expenseHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/expenses/{id}", expenseHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}", expenseHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/expenses/{id}", expenseHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/budgets", budgetHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/budgets/{currency}", budgetHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/budgets/{currency}", budgetHandler.SetCap).Methods(http.MethodPut)

	api.HandleFunc("/forex-cards", forexHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/forex-cards/{currency}", forexHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/forex-cards/{currency}", forexHandler.SetLoaded).Methods(http.MethodPut)

	api.HandleFunc("/rates", rateHandler.Current).Methods(http.MethodGet)
	api.HandleFunc("/rates/overrides", rateHandler.ListOverrides).Methods(http.MethodGet)
	api.HandleFunc("/rates/overrides", rateHandler.SetOverride).Methods(http.MethodPost)
	api.HandleFunc("/rates/overrides/{currency}", rateHandler.ClearOverride).Methods(http.MethodDelete)

	api.HandleFunc("/analytics/daily-totals", analyticsHandler.DailyTotals).Methods(http.MethodGet)
	api.HandleFunc("/analytics/average-daily-spend", analyticsHandler.AverageDailySpend).Methods(http.MethodGet)
	api.HandleFunc("/analytics/remaining-daily-budget", analyticsHandler.RemainingDailyBudget).Methods(http.MethodGet)
	api.HandleFunc("/analytics/currency-breakdown", analyticsHandler.CurrencyBreakdown).Methods(http.MethodGet)
	api.HandleFunc("/analytics/category-breakdown", analyticsHandler.CategoryBreakdown).Methods(http.MethodGet)
	api.HandleFunc("/analytics/trend", analyticsHandler.Trend).Methods(http.MethodGet)

	api.HandleFunc("/trip", tripHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/trip", tripHandler.Set).Methods(http.MethodPut)
	api.HandleFunc("/trip/phase", tripHandler.Phase).Methods(http.MethodGet)

	api.HandleFunc("/alerts", alertHandler.List).Methods(http.MethodGet)

	api.HandleFunc("/admin/reconcile", expenseHandler.Reconcile).Methods(http.MethodPost)

	// Static UI shell, if bundled alongside the binary.
	if _, err := os.Stat("web"); err == nil {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir("web")))
	}

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, corsMiddleware(r)); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
