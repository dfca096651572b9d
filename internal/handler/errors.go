package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/items-api/internal/domain"
)

const (
	msgInvalidBody  = "Invalid request body."
	msgServerError  = "Server error"
	msgItemNotFound = "Item not found"
)

// writeServiceError maps a service error onto its status code and message.
// Anything unrecognised is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		slog.Warn(op+" rejected", "reason", verr.Message)
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, domain.ErrDuplicateEmail):
		slog.Warn(op+" rejected", "reason", "duplicate email")
		writeError(w, http.StatusBadRequest, "Email is already taken.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		slog.Warn(op+" rejected", "reason", "invalid credentials")
		writeError(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgItemNotFound)
	case errors.Is(err, domain.ErrForbidden):
		slog.Warn(op+" rejected", "reason", "owner mismatch")
		writeError(w, http.StatusForbidden, "Forbidden: You do not own this item")
	default:
		slog.Error(op, "error", err, "method", r.Method, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}
