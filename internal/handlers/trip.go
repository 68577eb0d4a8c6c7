package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/services"
)

type TripHandler struct {
	service services.TripService
	logger  *zap.Logger
}

func NewTripHandler(service services.TripService, logger *zap.Logger) *TripHandler {
	return &TripHandler{service: service, logger: logger}
}

type tripDatesRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Get handles GET /api/trip.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.service.Get(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if trip == nil {
		writeError(w, h.logger, apperrors.NotFound("trip dates", "current"))
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// Set handles PUT /api/trip.
func (h *TripHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req tripDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, h.logger, apperrors.Validation("start_date", "must be YYYY-MM-DD"))
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(w, h.logger, apperrors.Validation("end_date", "must be YYYY-MM-DD"))
		return
	}
	trip, err := h.service.SetDates(r.Context(), start, end)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// Phase handles GET /api/trip/phase?date=YYYY-MM-DD.
func (h *TripHandler) Phase(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeError(w, h.logger, apperrors.Validation("date", "must be YYYY-MM-DD"))
			return
		}
		date = d
	}
	phase, err := h.service.Phase(r.Context(), date)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"date":  date.Format("2006-01-02"),
		"phase": string(phase),
	})
}
