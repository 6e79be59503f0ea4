package services

import (
	"context"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/ballot/internal/core/domain"
)

// stallingStore blocks every call until its context is cancelled, like a
// backend with a stuck connection.
type stallingStore struct{}

func (stallingStore) Insert(ctx context.Context, record *domain.VoteRecord) error {
	<-ctx.Done()
	return ctx.Err()
}

func (stallingStore) Votes(ctx context.Context) iter.Seq2[domain.VoteRecord, error] {
	return func(yield func(domain.VoteRecord, error) bool) {
		<-ctx.Done()
		yield(domain.VoteRecord{}, ctx.Err())
	}
}

func (stallingStore) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func stalledLedger() *voteLedger {
	return &voteLedger{store: stallingStore{}, timeout: 20 * time.Millisecond}
}

func TestRecordFailsOnStalledStore(t *testing.T) {
	ledger := stalledLedger()

	candidate, err := domain.NewCandidate(domain.Submission{
		VoterName:  "A",
		VoterEmail: "a@x.com",
		Vote:       "casting",
	}, time.Now())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := ledger.Record(context.Background(), candidate)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	case <-time.After(time.Second):
		t.Fatal("Record did not return after the storage timeout")
	}
}

func TestComputeFailsOnStalledStore(t *testing.T) {
	tallyService := NewTallyService(stalledLedger())

	done := make(chan error, 1)
	go func() {
		_, err := tallyService.Compute(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	case <-time.After(time.Second):
		t.Fatal("Compute did not return after the storage timeout")
	}
}

func TestPingFailsOnStalledStore(t *testing.T) {
	ledger := stalledLedger()

	done := make(chan error, 1)
	go func() {
		done <- ledger.Ping(context.Background())
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("Ping did not return after the storage timeout")
	}
}
