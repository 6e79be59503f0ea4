package ports

import (
	"context"
	"iter"

	"github.com/vncsmyrnk/ballot/internal/core/domain"
)

// EntityStore is the durable storage port for vote records.
//
// Insert must be an atomic conditional insert keyed on ParticipantKey: when a
// record for the same participant already exists it returns
// domain.ErrParticipantExists and writes nothing. It never overwrites.
//
// Votes returns a lazy scan over the committed record set. The sequence is
// finite and restartable: every range re-reads the store, so a tally may lag
// a concurrent write but never sees a half-written record.
type EntityStore interface {
	Insert(ctx context.Context, record *domain.VoteRecord) error
	Votes(ctx context.Context) iter.Seq2[domain.VoteRecord, error]
	Ping(ctx context.Context) error
}
