package handler

import (
	"net/http"

	"github.com/dtroode/signup-server/internal/model"
)

// Health reports process and store health.
type Health struct {
	store model.UserStore
}

// NewHealth creates a new Health handler.
func NewHealth(store model.UserStore) *Health {
	return &Health{store: store}
}

// Check handles GET /health.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
