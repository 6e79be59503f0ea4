package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/vncsmyrnk/ballot/internal/core/domain"
	"github.com/vncsmyrnk/ballot/internal/core/ports"
)

type HealthHandler struct {
	ledger ports.VoteLedger
}

func NewHealthHandler(ledger ports.VoteLedger) *HealthHandler {
	return &HealthHandler{
		ledger: ledger,
	}
}

type healthResponse struct {
	Status           string    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
	StorageConnected bool      `json:"storageConnected"`
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:           "healthy",
		Timestamp:        time.Now(),
		StorageConnected: true,
	}

	status := http.StatusOK
	if err := h.ledger.Ping(r.Context()); err != nil {
		resp.StorageConnected = false
		// demo mode has no store to reach, so it stays healthy
		if !errors.Is(err, domain.ErrNoDurableStore) {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, resp)
}
