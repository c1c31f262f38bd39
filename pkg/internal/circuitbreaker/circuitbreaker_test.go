package circuitbreaker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/circuitbreaker"
	"github.com/joeydtaylor/npulse/pkg/internal/sensor"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

func TestCircuitBreakerTripsAtThreshold(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker(context.Background(), 2, time.Hour)

	cb.RecordError()
	if !cb.Allow() {
		t.Fatalf("expected breaker closed after one error")
	}
	cb.RecordError()
	if cb.Allow() {
		t.Fatalf("expected breaker open after two errors")
	}
	if cb.NextReset().IsZero() {
		t.Fatalf("expected next reset time while open")
	}

	cb.Reset()
	if !cb.Allow() {
		t.Fatalf("expected breaker closed after reset")
	}
	if !cb.NextReset().IsZero() {
		t.Fatalf("expected zero next reset while closed")
	}
}

func TestCircuitBreakerSuccessClearsCount(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker(context.Background(), 2, time.Hour)

	cb.RecordError()
	cb.RecordSuccess()
	cb.RecordError()
	if !cb.Allow() {
		t.Fatalf("expected failures separated by a success not to trip")
	}
	cb.RecordError()
	if cb.Allow() {
		t.Fatalf("expected two consecutive failures to trip")
	}
	cb.RecordSuccess()
	if cb.Allow() {
		t.Fatalf("success must not close an open breaker")
	}
}

func TestCircuitBreakerAutoReset(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker(context.Background(), 1, 50*time.Millisecond)

	cb.Trip()
	if cb.Allow() {
		t.Fatalf("expected breaker open after trip")
	}
	time.Sleep(80 * time.Millisecond)
	if !cb.Allow() {
		t.Fatalf("expected breaker to reset after window")
	}

	select {
	case <-cb.(*circuitbreaker.CircuitBreaker).ResetNotify():
	default:
		t.Fatalf("expected reset notification")
	}
}

func TestCircuitBreakerDebounce(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker(context.Background(), 2, time.Hour, circuitbreaker.WithDebouncePeriod(60))
	cb.RecordError()
	cb.RecordError()
	if !cb.Allow() {
		t.Fatalf("expected debounced second error to be ignored")
	}
}

func TestCircuitBreakerSensorHooks(t *testing.T) {
	var trips, resets, drops int32
	s := sensor.NewSensor(
		sensor.WithOnCircuitBreakerTripFunc(func(c types.ComponentMetadata, at int64, next int64) { atomic.AddInt32(&trips, 1) }),
		sensor.WithOnCircuitBreakerResetFunc(func(c types.ComponentMetadata, at int64) { atomic.AddInt32(&resets, 1) }),
		sensor.WithOnCircuitBreakerDropFunc(func(c types.ComponentMetadata) { atomic.AddInt32(&drops, 1) }),
	)
	cb := circuitbreaker.NewCircuitBreaker(context.Background(), 1, time.Hour, circuitbreaker.WithSensor(s))

	cb.RecordError()
	cb.Allow()
	cb.Reset()

	if atomic.LoadInt32(&trips) != 1 || atomic.LoadInt32(&drops) != 1 || atomic.LoadInt32(&resets) != 1 {
		t.Fatalf("unexpected hook counts trips=%d drops=%d resets=%d", trips, drops, resets)
	}
}
