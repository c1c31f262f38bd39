package circuitbreaker

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// WithLogger attaches loggers to the breaker.
func WithLogger(logger ...types.Logger) types.Option[types.CircuitBreaker] {
	return func(cb types.CircuitBreaker) {
		cb.ConnectLogger(logger...)
	}
}

// WithSensor attaches sensors to the breaker.
func WithSensor(sensor ...types.Sensor) types.Option[types.CircuitBreaker] {
	return func(cb types.CircuitBreaker) {
		cb.ConnectSensor(sensor...)
	}
}

// WithDebouncePeriod ignores errors recorded closer together than seconds.
func WithDebouncePeriod(seconds int) types.Option[types.CircuitBreaker] {
	return func(cb types.CircuitBreaker) {
		cb.SetDebouncePeriod(seconds)
	}
}

// WithComponentMetadata sets the breaker name and id.
func WithComponentMetadata(name string, id string) types.Option[types.CircuitBreaker] {
	return func(cb types.CircuitBreaker) {
		cb.SetComponentMetadata(name, id)
	}
}
