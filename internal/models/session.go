package models

import (
	"time"
)

// VerificationState is the position of a verification session in its lifecycle
type VerificationState string

const (
	VerificationStateStart           VerificationState = "start"
	VerificationStateChallengeSent   VerificationState = "challenge_sent"
	VerificationStateAlreadyVerified VerificationState = "already_verified"
	VerificationStateTimedOut        VerificationState = "timed_out"
	VerificationStateMatched         VerificationState = "matched"
	VerificationStateMismatched      VerificationState = "mismatched"
)

// IsTerminal returns true once the session has resolved
func (s VerificationState) IsTerminal() bool {
	switch s {
	case VerificationStateAlreadyVerified, VerificationStateTimedOut,
		VerificationStateMatched, VerificationStateMismatched:
		return true
	}
	return false
}

// VerificationSession correlates one verify invocation with the response it waits for
type VerificationSession struct {
	// ID is the unique identifier for this session
	ID string `json:"id"`

	// UserID is the member being verified
	UserID string `json:"user_id"`

	// ChannelID is the channel the challenge was issued in
	ChannelID string `json:"channel_id"`

	// Challenge is the issued challenge text
	Challenge string `json:"-"`

	// State is the current state of the session
	State VerificationState `json:"state"`

	// IssuedAt is when the challenge was sent
	IssuedAt time.Time `json:"issued_at"`

	// Deadline is when the session stops waiting for a response
	Deadline time.Time `json:"deadline"`
}
