package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/circuitbreaker"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// NewCircuitBreaker trips after errorThreshold errors and allows again after timeWindow.
func NewCircuitBreaker(ctx context.Context, errorThreshold int, timeWindow time.Duration, options ...types.Option[types.CircuitBreaker]) types.CircuitBreaker {
	return circuitbreaker.NewCircuitBreaker(ctx, errorThreshold, timeWindow, options...)
}

func CircuitBreakerWithSensor(sensor ...types.Sensor) types.Option[types.CircuitBreaker] {
	return circuitbreaker.WithSensor(sensor...)
}

// CircuitBreakerWithLogger adds a logger to the CircuitBreaker for logging its activities.
func CircuitBreakerWithLogger(logger ...types.Logger) types.Option[types.CircuitBreaker] {
	return circuitbreaker.WithLogger(logger...)
}

// CircuitBreakerWithDebouncePeriod ignores errors arriving within seconds of the previous one.
func CircuitBreakerWithDebouncePeriod(seconds int) types.Option[types.CircuitBreaker] {
	return circuitbreaker.WithDebouncePeriod(seconds)
}
