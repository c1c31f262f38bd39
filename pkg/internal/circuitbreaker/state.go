package circuitbreaker

import (
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Allow reports whether a publish may proceed. An open breaker whose window has elapsed closes
// itself and allows.
func (cb *CircuitBreaker) Allow() bool {
	now := time.Now()

	cb.stateLock.Lock()
	allowed := cb.allowed
	reopened := false
	if !allowed && (cb.timeWindow <= 0 || now.Sub(cb.lastTripped) >= cb.timeWindow) {
		cb.closeLocked()
		allowed, reopened = true, true
	}
	cb.stateLock.Unlock()

	switch {
	case reopened:
		cb.afterReset(now, true)
	case !allowed:
		cb.notifyDrop()
	}
	return allowed
}

// RecordError counts a consecutive failure and opens the breaker at the threshold. Errors inside
// the debounce period count once.
func (cb *CircuitBreaker) RecordError() {
	now := time.Now()
	debounce := time.Duration(atomic.LoadInt64(&cb.debounceNanos))

	cb.stateLock.Lock()
	if debounce > 0 && !cb.lastErrorTime.IsZero() && now.Sub(cb.lastErrorTime) < debounce {
		cb.stateLock.Unlock()
		return
	}
	cb.lastErrorTime = now
	cb.errorCount++
	errorCount := cb.errorCount
	tripped := cb.allowed && errorCount >= cb.errorThreshold
	if tripped {
		cb.openLocked(now)
	}
	cb.stateLock.Unlock()

	cb.NotifyLoggers(types.DebugLevel, "Circuit breaker recorded error",
		"component", cb.snapshotMetadata(), "event", "record_error",
		"error_count", errorCount, "error_threshold", cb.errorThreshold)
	if tripped {
		cb.afterTrip(now)
	}
}

// RecordSuccess clears the consecutive failure count of a closed breaker.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.stateLock.Lock()
	if cb.allowed {
		cb.errorCount = 0
	}
	cb.stateLock.Unlock()
}

// Reset closes the breaker.
func (cb *CircuitBreaker) Reset() {
	cb.stateLock.Lock()
	if cb.allowed {
		cb.stateLock.Unlock()
		return
	}
	cb.closeLocked()
	cb.stateLock.Unlock()

	cb.afterReset(time.Now(), false)
}

// Trip opens the breaker immediately.
func (cb *CircuitBreaker) Trip() {
	now := time.Now()

	cb.stateLock.Lock()
	if !cb.allowed {
		cb.stateLock.Unlock()
		return
	}
	cb.openLocked(now)
	cb.stateLock.Unlock()

	cb.afterTrip(now)
}

// NextReset returns when an open breaker will next allow work; zero when closed.
func (cb *CircuitBreaker) NextReset() time.Time {
	cb.stateLock.Lock()
	defer cb.stateLock.Unlock()
	if cb.allowed {
		return time.Time{}
	}
	return cb.lastTripped.Add(cb.timeWindow)
}

func (cb *CircuitBreaker) openLocked(now time.Time) {
	cb.allowed = false
	cb.lastTripped = now
}

func (cb *CircuitBreaker) closeLocked() {
	cb.allowed = true
	cb.errorCount = 0
}

func (cb *CircuitBreaker) afterTrip(now time.Time) {
	nextReset := now.Add(cb.timeWindow)
	cb.notifyTrip(now.UnixNano(), nextReset.UnixNano())
	cb.NotifyLoggers(types.WarnLevel, "Circuit breaker tripped",
		"component", cb.snapshotMetadata(), "event", "trip", "result", "OPEN",
		"error_threshold", cb.errorThreshold, "next_reset", nextReset)
}

func (cb *CircuitBreaker) afterReset(now time.Time, auto bool) {
	cb.notifyReset(now.UnixNano())
	cb.signalReset()
	cb.NotifyLoggers(types.InfoLevel, "Circuit breaker reset",
		"component", cb.snapshotMetadata(), "event", "reset", "result", "CLOSED", "auto", auto)
}
