package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Option is one of the closed set of ballot choices. "nota" is the
// none-of-the-above choice.
type Option string

const (
	OptionCasting Option = "casting"
	OptionNota    Option = "nota"
)

func Options() []Option {
	return []Option{OptionCasting, OptionNota}
}

func ParseOption(s string) (Option, error) {
	switch opt := Option(s); opt {
	case OptionCasting, OptionNota:
		return opt, nil
	}
	return "", ErrInvalidOption
}

// VoteRecord is a single persisted vote. It is written once and never
// updated or deleted.
type VoteRecord struct {
	ID             uuid.UUID `json:"id"`
	ParticipantKey string    `json:"participant_key"`
	VoterName      string    `json:"voter_name"`
	VoterEmail     string    `json:"voter_email"`
	Option         Option    `json:"vote"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Submission carries the raw fields of a vote request before validation.
type Submission struct {
	VoterName  string
	VoterEmail string
	Vote       string
	Timestamp  string
}

// Client timestamps further in the future than this are implausible and
// replaced by the server clock.
const timestampSlack = 5 * time.Minute

// NewCandidate validates a submission and builds the record to persist.
// The returned record carries no ID; the ledger assigns one at write time.
// The client timestamp is advisory only: it is kept when parsable and
// plausible, otherwise now wins. NewCandidate has no side effects.
func NewCandidate(sub Submission, now time.Time) (*VoteRecord, error) {
	name := strings.TrimSpace(sub.VoterName)
	email := strings.TrimSpace(sub.VoterEmail)
	vote := strings.TrimSpace(sub.Vote)

	if name == "" || email == "" || vote == "" {
		return nil, ErrMissingField
	}

	option, err := ParseOption(vote)
	if err != nil {
		return nil, err
	}

	submittedAt := now
	if sub.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, sub.Timestamp); err == nil && !ts.After(now.Add(timestampSlack)) {
			submittedAt = ts
		}
	}

	return &VoteRecord{
		ParticipantKey: ParticipantKey(name, email),
		VoterName:      name,
		VoterEmail:     email,
		Option:         option,
		SubmittedAt:    submittedAt,
	}, nil
}

// ParticipantKey normalizes voter identity into the key that
// one-vote-per-participant is enforced against. Case and surrounding
// whitespace do not produce distinct keys.
func ParticipantKey(name, email string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(email))
}

// Tally is the aggregate view over the persisted record set. It is derived
// on demand and never stored. Unrecognized counts records whose stored
// option fell outside the closed set; they are kept out of the buckets but
// still included in Total.
type Tally struct {
	Counts       map[Option]int64
	Total        int64
	Unrecognized int64
}

func NewTally() *Tally {
	counts := make(map[Option]int64, len(Options()))
	for _, opt := range Options() {
		counts[opt] = 0
	}
	return &Tally{Counts: counts}
}
