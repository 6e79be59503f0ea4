package memory

import (
	"context"
	"iter"
	"sync"

	"github.com/vncsmyrnk/ballot/internal/core/domain"
)

// Store keeps vote records in process memory, keyed by participant key.
// The mutex makes Insert an atomic conditional insert, matching the
// guarantee durable adapters provide.
type Store struct {
	mu    sync.RWMutex
	votes map[string]domain.VoteRecord
	order []string
}

func NewStore(seed ...domain.VoteRecord) *Store {
	votes := make(map[string]domain.VoteRecord, len(seed))
	order := make([]string, 0, len(seed))
	for _, record := range seed {
		if _, ok := votes[record.ParticipantKey]; ok {
			continue
		}
		votes[record.ParticipantKey] = record
		order = append(order, record.ParticipantKey)
	}
	return &Store{
		votes: votes,
		order: order,
	}
}

func (s *Store) Insert(ctx context.Context, record *domain.VoteRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.votes[record.ParticipantKey]; ok {
		return domain.ErrParticipantExists
	}
	s.votes[record.ParticipantKey] = *record
	s.order = append(s.order, record.ParticipantKey)
	return nil
}

// Votes snapshots the committed records under the read lock, so a scan never
// observes a half-applied insert. Each range takes a fresh snapshot.
func (s *Store) Votes(ctx context.Context) iter.Seq2[domain.VoteRecord, error] {
	return func(yield func(domain.VoteRecord, error) bool) {
		s.mu.RLock()
		records := make([]domain.VoteRecord, 0, len(s.order))
		for _, key := range s.order {
			records = append(records, s.votes[key])
		}
		s.mu.RUnlock()

		for _, record := range records {
			if err := ctx.Err(); err != nil {
				yield(domain.VoteRecord{}, err)
				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
