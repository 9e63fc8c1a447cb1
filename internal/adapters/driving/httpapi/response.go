package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Writing response: %v", err)
	}
}

// statusFor maps domain errors onto HTTP status codes and error codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNoSelection):
		return http.StatusBadRequest, "invalid_input"
	case domain.IsPersistError(err):
		return http.StatusServiceUnavailable, "persist_failed"
	case errors.Is(err, domain.ErrNotLoaded), errors.Is(err, domain.ErrNotImplemented):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Warn("Request %s failed: %v", RequestID(r.Context()), err)
		message = "internal error"
	}
	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   message,
		RequestID: RequestID(r.Context()),
	})
}
