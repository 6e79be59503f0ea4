package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vncsmyrnk/ballot/internal/core/domain"
	"github.com/vncsmyrnk/ballot/internal/core/ports"
)

type VoteHandler struct {
	service ports.SubmissionService
}

func NewVoteHandler(service ports.SubmissionService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	VoterName  string `json:"voterName"`
	VoterEmail string `json:"voterEmail"`
	Vote       string `json:"vote"`
	Timestamp  string `json:"timestamp,omitempty"`
}

type voteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	VoteID  string `json:"voteId,omitempty"`
}

// SubmitVote godoc
// @Summary      Submits a vote
// @Description  Records one vote for the submitting participant. Resubmissions by the same participant are rejected.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Success      200  {object}  voteResponse
// @Failure      400  {object}  voteResponse
// @Failure      503  {object}  voteResponse
// @Router       /api/vote [post]
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, voteResponse{Success: false, Message: "invalid request body"})
		return
	}

	record, err := h.service.Submit(r.Context(), ports.SubmissionInput{
		VoterName:  req.VoterName,
		VoterEmail: req.VoterEmail,
		Vote:       req.Vote,
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField),
			errors.Is(err, domain.ErrInvalidOption),
			errors.Is(err, domain.ErrAlreadyVoted):
			writeJSON(w, http.StatusBadRequest, voteResponse{Success: false, Message: err.Error()})
		case errors.Is(err, domain.ErrStorageUnavailable):
			writeJSON(w, http.StatusServiceUnavailable, voteResponse{Success: false, Message: "error recording vote, please try again"})
		default:
			writeJSON(w, http.StatusInternalServerError, voteResponse{Success: false, Message: "error recording vote"})
		}
		return
	}

	writeJSON(w, http.StatusOK, voteResponse{
		Success: true,
		Message: "Vote recorded successfully",
		VoteID:  record.ID.String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
