package circuitbreaker

import (
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// SetComponentMetadata updates the circuit breaker name and id.
func (cb *CircuitBreaker) SetComponentMetadata(name string, id string) {
	cb.configLock.Lock()
	cb.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: cb.componentMetadata.Type}
	cb.configLock.Unlock()
}

// GetComponentMetadata returns the circuit breaker metadata.
func (cb *CircuitBreaker) GetComponentMetadata() types.ComponentMetadata {
	return cb.snapshotMetadata()
}

// SetDebouncePeriod configures the minimum spacing between recorded errors.
func (cb *CircuitBreaker) SetDebouncePeriod(seconds int) {
	if seconds <= 0 {
		atomic.StoreInt64(&cb.debounceNanos, 0)
		return
	}
	atomic.StoreInt64(&cb.debounceNanos, int64(time.Second)*int64(seconds))
}

func (cb *CircuitBreaker) snapshotMetadata() types.ComponentMetadata {
	cb.configLock.Lock()
	defer cb.configLock.Unlock()
	return cb.componentMetadata
}

func (cb *CircuitBreaker) snapshotSensors() []types.Sensor {
	cb.configLock.Lock()
	defer cb.configLock.Unlock()
	return append([]types.Sensor(nil), cb.sensors...)
}

func (cb *CircuitBreaker) snapshotLoggers() []types.Logger {
	cb.loggersLock.Lock()
	defer cb.loggersLock.Unlock()
	return append([]types.Logger(nil), cb.loggers...)
}
