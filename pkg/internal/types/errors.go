package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned by conditioning and detection when a
	// trace is too short, has zero variance, or yields fewer than two peaks.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrResourceNotFound is returned when an analysis input cannot be located.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrTransportFault is the sentinel wrapped by every TransportError.
	ErrTransportFault = errors.New("transport fault")

	// ErrTransportTimeout is returned when a bridged transport call exceeds its deadline.
	ErrTransportTimeout = errors.New("transport call timed out")

	ErrSessionActive = errors.New("acquisition session already active")
	ErrNotConnected  = errors.New("transport not connected")
	ErrNoData        = errors.New("no records collected")

	// ErrCircuitOpen is returned when a circuit breaker rejects work.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// TransportError describes a transport failure during arming or collection.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transport %s failed", e.Op)
	}
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

// Unwrap exposes both the cause and ErrTransportFault to errors.Is.
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransportFault}
	}
	return []error{ErrTransportFault, e.Err}
}

// NewTransportError wraps err for the named operation. A nil err stays nil.
func NewTransportError(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}
