package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vncsmyrnk/ballot/internal/core/domain"
)

const (
	participantKeyPrefix = "ballot:participant:"
	recordKeyPrefix      = "ballot:vote:"
	indexKey             = "ballot:votes"
)

// insertScript claims the participant key, stores the record and appends it
// to the scan index in one atomic step. SETNX returning 0 means the
// participant already voted; nothing is written in that case.
var insertScript = goredis.NewScript(`
if redis.call("SETNX", KEYS[1], ARGV[1]) == 0 then
  return 0
end
redis.call("SET", KEYS[2], ARGV[2])
redis.call("RPUSH", KEYS[3], ARGV[1])
return 1
`)

type VoteRepository struct {
	client *goredis.Client
}

func NewVoteRepository(ctx context.Context, url string) (*VoteRepository, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &VoteRepository{client: client}, nil
}

func (r *VoteRepository) Insert(ctx context.Context, record *domain.VoteRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode vote: %w", err)
	}

	keys := []string{
		participantKeyPrefix + record.ParticipantKey,
		recordKeyPrefix + record.ID.String(),
		indexKey,
	}
	inserted, err := insertScript.Run(ctx, r.client, keys, record.ID.String(), payload).Int()
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	if inserted == 0 {
		return domain.ErrParticipantExists
	}
	return nil
}

// Votes walks the insertion-order index and fetches each record. The index
// is append-only and records are immutable, so a scan never observes a
// partial insert; every range re-reads the index.
func (r *VoteRepository) Votes(ctx context.Context) iter.Seq2[domain.VoteRecord, error] {
	return func(yield func(domain.VoteRecord, error) bool) {
		ids, err := r.client.LRange(ctx, indexKey, 0, -1).Result()
		if err != nil {
			yield(domain.VoteRecord{}, fmt.Errorf("failed to list votes: %w", err))
			return
		}

		for _, id := range ids {
			raw, err := r.client.Get(ctx, recordKeyPrefix+id).Result()
			if err != nil {
				yield(domain.VoteRecord{}, fmt.Errorf("failed to fetch vote %s: %w", id, err))
				return
			}

			var record domain.VoteRecord
			if err := json.Unmarshal([]byte(raw), &record); err != nil {
				yield(domain.VoteRecord{}, fmt.Errorf("failed to decode vote %s: %w", id, err))
				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

func (r *VoteRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *VoteRepository) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("error closing redis client: %w", err)
	}
	return nil
}
