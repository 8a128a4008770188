package domain

import "fmt"

// SessionCreateError means the backend rejected the session configuration.
type SessionCreateError struct {
	Err error
}

func (e *SessionCreateError) Error() string { return fmt.Sprintf("create session: %v", e.Err) }
func (e *SessionCreateError) Unwrap() error { return e.Err }

// ConcurrentTurnError means a turn was requested while one was already
// streaming for the same session.
type ConcurrentTurnError struct {
	SessionID string
}

func (e *ConcurrentTurnError) Error() string {
	return fmt.Sprintf("session %s: a turn is already in flight", e.SessionID)
}

// TurnError covers both transport failure and an in-band error event.
// InBand distinguishes the two; Message is the user-visible text that is
// also surfaced as the final assistant message for the turn.
type TurnError struct {
	Message string
	InBand  bool
	Err     error
}

func (e *TurnError) Error() string {
	if e.InBand {
		return fmt.Sprintf("turn failed: %s", e.Message)
	}
	return fmt.Sprintf("turn failed: %v", e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }

// AdvanceError means a block advance was requested with no chain
// configured, after the chain completed, or the backend refused it.
type AdvanceError struct {
	Reason string
	Err    error
}

func (e *AdvanceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("advance block: %v", e.Err)
	}
	return fmt.Sprintf("advance block: %s", e.Reason)
}

func (e *AdvanceError) Unwrap() error { return e.Err }

// ArtifactError means artifact materialization failed. Not retried.
type ArtifactError struct {
	Type ArtifactType
	Err  error
}

func (e *ArtifactError) Error() string { return fmt.Sprintf("create %s artifact: %v", e.Type, e.Err) }
func (e *ArtifactError) Unwrap() error { return e.Err }

// SessionEndedError means an operation was attempted after End.
type SessionEndedError struct {
	SessionID string
}

func (e *SessionEndedError) Error() string {
	return fmt.Sprintf("session %s has ended", e.SessionID)
}
