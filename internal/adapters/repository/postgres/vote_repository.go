package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"iter"

	"github.com/vncsmyrnk/ballot/internal/core/domain"
	"github.com/vncsmyrnk/ballot/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.EntityStore {
	return &voteRepository{
		db: db,
	}
}

// Insert relies on the unique index on participant_key: ON CONFLICT DO
// NOTHING turns a concurrent duplicate into zero affected rows without ever
// overwriting, so the check and the write are a single atomic statement.
func (r *voteRepository) Insert(ctx context.Context, record *domain.VoteRecord) error {
	query := `
		INSERT INTO votes (id, participant_key, voter_name, voter_email, vote, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (participant_key) DO NOTHING;
	`
	result, err := r.db.ExecContext(ctx, query,
		record.ID, record.ParticipantKey, record.VoterName, record.VoterEmail,
		string(record.Option), record.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read insert result: %w", err)
	}
	if affected == 0 {
		return domain.ErrParticipantExists
	}
	return nil
}

// Votes re-runs the query on every range, which makes the sequence
// restartable; each pass sees the committed rows at query time.
func (r *voteRepository) Votes(ctx context.Context) iter.Seq2[domain.VoteRecord, error] {
	return func(yield func(domain.VoteRecord, error) bool) {
		query := `
			SELECT id, participant_key, voter_name, voter_email, vote, submitted_at
			FROM votes
		`
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			yield(domain.VoteRecord{}, fmt.Errorf("failed to query votes: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var record domain.VoteRecord
			var option string
			if err := rows.Scan(&record.ID, &record.ParticipantKey, &record.VoterName,
				&record.VoterEmail, &option, &record.SubmittedAt); err != nil {
				yield(domain.VoteRecord{}, fmt.Errorf("failed to scan vote: %w", err))
				return
			}
			record.Option = domain.Option(option)

			if !yield(record, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.VoteRecord{}, fmt.Errorf("error iterating votes: %w", err))
		}
	}
}

func (r *voteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
