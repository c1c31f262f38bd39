package types

import (
	"context"
	"time"
)

// SessionState enumerates the acquisition state machine.
type SessionState int32

const (
	SessionIdle SessionState = iota
	SessionArmed
	SessionCollecting
	SessionCompleted
	SessionCancelled
	SessionFailed
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionArmed:
		return "armed"
	case SessionCollecting:
		return "collecting"
	case SessionCompleted:
		return "completed"
	case SessionCancelled:
		return "cancelled"
	case SessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions happen from s.
func (s SessionState) Terminal() bool {
	return s == SessionCompleted || s == SessionCancelled || s == SessionFailed
}

// SessionSummary is the outcome of one acquisition run.
type SessionSummary struct {
	ID          string        `json:"id"`
	State       string        `json:"state"`
	Duration    time.Duration `json:"duration"`
	Elapsed     time.Duration `json:"elapsed"`
	SampleCount int           `json:"sample_count"`
	Rejected    int           `json:"rejected"`
	Dropped     uint64        `json:"observer_dropped"`
	StartedAt   time.Time     `json:"started_at"`
	EndedAt     time.Time     `json:"ended_at"`
	Error       string        `json:"error,omitempty"`
}

// Engine owns one transport and runs at most one acquisition session on it.
type Engine interface {
	// Collect runs a full session and blocks until it reaches a terminal state.
	// The returned records are preserved even when err is non-nil.
	Collect(ctx context.Context, duration time.Duration) ([]Record, SessionSummary, error)

	// Cancel requests cancellation of the active session, if any.
	Cancel()

	// State reports the state of the current or most recent session.
	State() SessionState

	// SampleCount returns the number of records appended so far.
	SampleCount() int

	// Snapshot copies the records collected so far.
	Snapshot() []Record

	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	GetComponentMetadata() ComponentMetadata
}
