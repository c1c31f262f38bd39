package sensor

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// RegisterOnCircuitBreakerTrip registers callbacks for circuit breaker trip events.
func (s *Sensor) RegisterOnCircuitBreakerTrip(callback ...func(types.ComponentMetadata, int64, int64)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnCircuitBreakerTrip = append(s.OnCircuitBreakerTrip, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnCircuitBreakerTrip invokes callbacks for circuit breaker trip events.
func (s *Sensor) InvokeOnCircuitBreakerTrip(c types.ComponentMetadata, at int64, nextReset int64) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCircuitBreakerTrip) {
		if cb == nil {
			continue
		}
		cb(c, at, nextReset)
	}
}

// RegisterOnCircuitBreakerReset registers callbacks for circuit breaker reset events.
func (s *Sensor) RegisterOnCircuitBreakerReset(callback ...func(types.ComponentMetadata, int64)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnCircuitBreakerReset = append(s.OnCircuitBreakerReset, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnCircuitBreakerReset invokes callbacks for circuit breaker reset events.
func (s *Sensor) InvokeOnCircuitBreakerReset(c types.ComponentMetadata, at int64) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCircuitBreakerReset) {
		if cb == nil {
			continue
		}
		cb(c, at)
	}
}

// RegisterOnCircuitBreakerDrop registers callbacks for work dropped by an open breaker.
func (s *Sensor) RegisterOnCircuitBreakerDrop(callback ...func(types.ComponentMetadata)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnCircuitBreakerDrop = append(s.OnCircuitBreakerDrop, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnCircuitBreakerDrop invokes callbacks for work dropped by an open breaker.
func (s *Sensor) InvokeOnCircuitBreakerDrop(c types.ComponentMetadata) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCircuitBreakerDrop) {
		if cb == nil {
			continue
		}
		cb(c)
	}
}
