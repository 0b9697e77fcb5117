package api

import (
	"context"
	"net/http"
	"time"

	"github.com/courtprep/backend/internal/api/respond"
	"github.com/courtprep/backend/internal/health"
)

// HealthHandler serves liveness and store-readiness probes.
type HealthHandler struct {
	store health.Pinger
}

func NewHealthHandler(store health.Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Live always succeeds while the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready checks the database connection with a short deadline.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.HealthPing(ctx); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
