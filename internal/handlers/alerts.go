package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/services"
)

type AlertHandler struct {
	service services.AlertService
	logger  *zap.Logger
}

func NewAlertHandler(service services.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{service: service, logger: logger}
}

// List handles GET /api/alerts.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.Collect(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}
