package services

import (
	"context"
	"time"

	"github.com/vncsmyrnk/ballot/internal/core/domain"
	"github.com/vncsmyrnk/ballot/internal/core/ports"
)

type submissionService struct {
	ledger ports.VoteLedger
}

func NewSubmissionService(ledger ports.VoteLedger) ports.SubmissionService {
	return &submissionService{
		ledger: ledger,
	}
}

// Submit runs a submission through validation and persistence. Validation
// and duplicate failures are permanent and never retried; storage failures
// bubble up unmasked for the caller to retry the whole submission.
func (s *submissionService) Submit(ctx context.Context, input ports.SubmissionInput) (*domain.VoteRecord, error) {
	candidate, err := domain.NewCandidate(domain.Submission{
		VoterName:  input.VoterName,
		VoterEmail: input.VoterEmail,
		Vote:       input.Vote,
		Timestamp:  input.Timestamp,
	}, time.Now())
	if err != nil {
		return nil, err
	}

	return s.ledger.Record(ctx, candidate)
}
