package ports

import (
	"context"
	"iter"

	"github.com/vncsmyrnk/ballot/internal/core/domain"
)

// VoteLedger persists validated votes and exposes the record set for
// aggregation. Record assigns the id and relies on the EntityStore's
// conditional insert for uniqueness, so two concurrent submissions from the
// same participant cannot both succeed.
type VoteLedger interface {
	Record(ctx context.Context, candidate *domain.VoteRecord) (*domain.VoteRecord, error)
	All(ctx context.Context) iter.Seq2[domain.VoteRecord, error]
	Ping(ctx context.Context) error
}

type SubmissionInput struct {
	VoterName  string
	VoterEmail string
	Vote       string
	Timestamp  string
}

type SubmissionService interface {
	Submit(ctx context.Context, input SubmissionInput) (*domain.VoteRecord, error)
}

type TallyService interface {
	Compute(ctx context.Context) (*domain.Tally, error)
}
