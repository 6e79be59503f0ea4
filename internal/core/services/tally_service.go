package services

import (
	"context"
	"fmt"
	"log"

	"github.com/vncsmyrnk/ballot/internal/core/domain"
	"github.com/vncsmyrnk/ballot/internal/core/ports"
)

type tallyService struct {
	ledger ports.VoteLedger
}

func NewTallyService(ledger ports.VoteLedger) ports.TallyService {
	return &tallyService{
		ledger: ledger,
	}
}

// Compute folds the full record set into per-option counts. Total always
// equals the number of records scanned. The validator keeps out-of-set
// options from ever being written, so an unrecognized option here means the
// stored data is inconsistent: the record is logged, excluded from the
// buckets and reported via Unrecognized rather than silently inflating a
// count.
func (s *tallyService) Compute(ctx context.Context) (*domain.Tally, error) {
	tally := domain.NewTally()

	for record, err := range s.ledger.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}

		tally.Total++
		if _, known := tally.Counts[record.Option]; !known {
			log.Printf("tally: vote %s has unrecognized option %q, excluding from buckets", record.ID, record.Option)
			tally.Unrecognized++
			continue
		}
		tally.Counts[record.Option]++
	}

	return tally, nil
}
