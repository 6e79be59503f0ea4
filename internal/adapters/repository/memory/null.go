package memory

import (
	"context"
	"iter"

	"github.com/vncsmyrnk/ballot/internal/core/domain"
)

// NullStore accepts every write and reports an empty record set. It backs
// demo deployments where no durable store is configured, keeping the storage
// contract uniform instead of branching through the service.
type NullStore struct{}

func NewNullStore() *NullStore {
	return &NullStore{}
}

func (s *NullStore) Insert(ctx context.Context, record *domain.VoteRecord) error {
	return ctx.Err()
}

func (s *NullStore) Votes(ctx context.Context) iter.Seq2[domain.VoteRecord, error] {
	return func(yield func(domain.VoteRecord, error) bool) {}
}

// Ping reports ErrNoDurableStore so health checks can show that no real
// backend is connected without treating demo mode as an outage.
func (s *NullStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return domain.ErrNoDurableStore
}
