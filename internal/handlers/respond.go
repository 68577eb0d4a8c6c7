package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/apperrors"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 with the detail withheld from the client.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case apperrors.IsValidation(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation_error", Detail: err.Error()})
	case apperrors.IsImmutableField(err):
		writeJSON(w, http.StatusConflict, errorBody{Error: "immutable_field", Detail: err.Error()})
	case apperrors.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Detail: err.Error()})
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal_error", Detail: "an unexpected error occurred"})
	}
}
