// Package circuitbreaker stops calls to a failing dependency after a threshold of errors and lets
// them resume once a cool-down window has elapsed.
package circuitbreaker

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// CircuitBreaker trips open after errorThreshold recorded errors and closes again after timeWindow.
type CircuitBreaker struct {
	componentMetadata types.ComponentMetadata

	stateLock      sync.Mutex
	allowed        bool
	errorCount     int
	errorThreshold int
	timeWindow     time.Duration
	lastTripped    time.Time
	lastErrorTime  time.Time
	debounceNanos  int64

	resetNotifyChan chan struct{}

	configLock  sync.Mutex
	sensors     []types.Sensor
	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewCircuitBreaker creates a closed breaker. The context is accepted for parity with the other
// constructors; the breaker holds no goroutines of its own.
func NewCircuitBreaker(_ context.Context, errorThreshold int, timeWindow time.Duration, options ...types.Option[types.CircuitBreaker]) types.CircuitBreaker {
	if errorThreshold <= 0 {
		errorThreshold = 1
	}
	cb := &CircuitBreaker{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "CIRCUIT_BREAKER",
		},
		allowed:         true,
		errorThreshold:  errorThreshold,
		timeWindow:      timeWindow,
		resetNotifyChan: make(chan struct{}, 1),
	}

	for _, option := range options {
		if option == nil {
			continue
		}
		option(cb)
	}

	return cb
}

// ResetNotify delivers a signal each time the breaker closes after being open.
func (cb *CircuitBreaker) ResetNotify() <-chan struct{} {
	return cb.resetNotifyChan
}

func (cb *CircuitBreaker) signalReset() {
	select {
	case cb.resetNotifyChan <- struct{}{}:
	default:
	}
}
