package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/msomdec/items-api/internal/domain"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	db domain.Database
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db domain.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealthz responds 200 {"status":"ok"} when the store answers a ping
// and 503 otherwise.
// GET /healthz
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Error("health check", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
