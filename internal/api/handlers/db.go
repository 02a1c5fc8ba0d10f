package handlers

import (
	"context"
	"net/http"

	"github.com/pharmetrics/askdb/internal/api"
)

// Pinger probes analytics database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DBHandler serves the analytics database connectivity probe.
type DBHandler struct {
	pinger Pinger
}

func NewDBHandler(pinger Pinger) *DBHandler {
	return &DBHandler{pinger: pinger}
}

// Test handles GET /db/test.
func (h *DBHandler) Test(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		api.Error(w, http.StatusServiceUnavailable, "Database unavailable", "analytics database not configured")
		return
	}

	if err := h.pinger.Ping(r.Context()); err != nil {
		api.Error(w, http.StatusServiceUnavailable, "Database unavailable", err.Error())
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{"status": "connected"})
}
