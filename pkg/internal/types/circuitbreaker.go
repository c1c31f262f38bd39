package types

import "time"

// CircuitBreaker halts an operation after repeated failures and lets it resume after a cool-down window.
type CircuitBreaker interface {
	// Allow reports whether work may proceed. An open breaker whose window has
	// elapsed resets itself and allows.
	Allow() bool

	// RecordError counts a failure and trips the breaker at the threshold.
	RecordError()

	// RecordSuccess clears the consecutive failure count of a closed breaker.
	RecordSuccess()

	// Reset closes the breaker.
	Reset()

	// Trip opens the breaker immediately.
	Trip()

	// NextReset returns when an open breaker will allow again; zero when closed.
	NextReset() time.Time

	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	SetDebouncePeriod(seconds int)
}
