package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/trackr/api/internal/api/types"
	appErr "github.com/trackr/api/pkg/errors"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping Pinger
}

func NewHealthHandler(ping Pinger) *HealthHandler { return &HealthHandler{ping: ping} }

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.StatusResponse{Status: "ok"})
}

// Readiness fails while the database cannot be reached.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			writeError(w, r, appErr.Wrap(err, appErr.CodeUnavailable, "database unavailable"))
			return
		}
	}
	writeJSON(w, http.StatusOK, types.StatusResponse{Status: "ready"})
}
