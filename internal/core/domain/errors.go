package domain

import "errors"

var (
	ErrMissingField       = errors.New("missing required fields")
	ErrInvalidOption      = errors.New("invalid vote option")
	ErrAlreadyVoted       = errors.New("participant has already voted")
	ErrParticipantExists  = errors.New("participant key already exists")
	ErrStorageUnavailable = errors.New("vote storage is unavailable")
	ErrNoDurableStore     = errors.New("no durable store configured")
)
