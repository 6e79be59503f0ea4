package http

import (
	"net/http"

	"github.com/vncsmyrnk/ballot/internal/core/ports"
)

type ResultsHandler struct {
	service ports.TallyService
}

func NewResultsHandler(service ports.TallyService) *ResultsHandler {
	return &ResultsHandler{
		service: service,
	}
}

// GetResults godoc
// @Summary      Returns the current tally
// @Description  Per-option vote counts plus the total, recomputed from the persisted record set.
// @Tags         votes
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Failure      500  {object}  voteResponse
// @Router       /api/results [get]
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	tally, err := h.service.Compute(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, voteResponse{Success: false, Message: "error fetching results"})
		return
	}

	body := make(map[string]int64, len(tally.Counts)+2)
	for option, count := range tally.Counts {
		body[string(option)] = count
	}
	body["total"] = tally.Total
	if tally.Unrecognized > 0 {
		// total includes these records even though no bucket does
		body["unrecognized"] = tally.Unrecognized
	}

	writeJSON(w, http.StatusOK, body)
}
