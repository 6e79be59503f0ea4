package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballot/internal/core/domain"
	"github.com/vncsmyrnk/ballot/internal/core/ports"
)

const storageTimeout = 5 * time.Second

type voteLedger struct {
	store   ports.EntityStore
	timeout time.Duration
}

func NewVoteLedger(store ports.EntityStore) ports.VoteLedger {
	return &voteLedger{
		store:   store,
		timeout: storageTimeout,
	}
}

// Record assigns a fresh id and server timestamp where needed, then performs
// a single conditional insert through the storage port. There is no separate
// existence check here: uniqueness is the store's atomic guarantee, which
// keeps concurrent resubmissions race-free.
func (l *voteLedger) Record(ctx context.Context, candidate *domain.VoteRecord) (*domain.VoteRecord, error) {
	record := *candidate
	record.ID = uuid.New()
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := l.store.Insert(ctx, &record); err != nil {
		if errors.Is(err, domain.ErrParticipantExists) {
			return nil, domain.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	return &record, nil
}

// All bounds each pass over the scan with the storage timeout, so a stalled
// backend surfaces as an error through the sequence instead of hanging the
// caller's fold.
func (l *voteLedger) All(ctx context.Context) iter.Seq2[domain.VoteRecord, error] {
	return func(yield func(domain.VoteRecord, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()

		for record, err := range l.store.Votes(ctx) {
			if !yield(record, err) {
				return
			}
		}
	}
}

func (l *voteLedger) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.store.Ping(ctx)
}
