package acquisition

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithStartToken sets the control token that begins streaming.
func WithStartToken(token string) types.Option[*Engine] {
	return func(e *Engine) { e.startToken = token }
}

// WithStopToken sets a control token sent before streaming ends; empty sends nothing.
func WithStopToken(token string) types.Option[*Engine] {
	return func(e *Engine) { e.stopToken = token }
}

// WithTick sets how often the deadline is checked.
func WithTick(d time.Duration) types.Option[*Engine] {
	return func(e *Engine) {
		if d > 0 {
			e.tick = d
		}
	}
}

// WithStopTimeout bounds the end-of-session transport calls.
func WithStopTimeout(d time.Duration) types.Option[*Engine] {
	return func(e *Engine) {
		if d > 0 {
			e.stopTimeout = d
		}
	}
}

// WithObserver attaches a live update channel.
func WithObserver(o *Observer) types.Option[*Engine] {
	return func(e *Engine) { e.observer = o }
}

// WithRecordFunc registers a per-record callback.
func WithRecordFunc(fn RecordFunc) types.Option[*Engine] {
	return func(e *Engine) { e.onRecord = fn }
}

// WithSensor attaches sensors to the engine and its framer.
func WithSensor(sensors ...types.Sensor) types.Option[*Engine] {
	return func(e *Engine) { e.ConnectSensor(sensors...) }
}

// WithLogger attaches loggers to the engine and its framer.
func WithLogger(loggers ...types.Logger) types.Option[*Engine] {
	return func(e *Engine) { e.ConnectLogger(loggers...) }
}

// WithComponentMetadata sets the engine name and id.
func WithComponentMetadata(name string, id string) types.Option[*Engine] {
	return func(e *Engine) {
		e.componentMetadata.Name = name
		e.componentMetadata.ID = id
	}
}
