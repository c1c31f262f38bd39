package acquisition

import (
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// State reports the state of the current or most recent session.
func (e *Engine) State() types.SessionState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// SampleCount returns the number of records appended so far.
func (e *Engine) SampleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// Snapshot copies the records collected so far.
func (e *Engine) Snapshot() []types.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]types.Record(nil), e.records...)
}

// Summary returns the summary of the most recent terminal session.
func (e *Engine) Summary() types.SessionSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.summary
}

// Observer returns the attached observer, if any.
func (e *Engine) Observer() *Observer { return e.observer }

// GetComponentMetadata returns the engine metadata.
func (e *Engine) GetComponentMetadata() types.ComponentMetadata { return e.componentMetadata }

// ConnectSensor attaches sensors to the engine and its framer.
func (e *Engine) ConnectSensor(sensors ...types.Sensor) {
	for _, s := range sensors {
		if s != nil {
			e.sensors = append(e.sensors, s)
			e.framer.ConnectSensor(s)
		}
	}
}

// ConnectLogger attaches loggers to the engine and its framer.
func (e *Engine) ConnectLogger(loggers ...types.Logger) {
	e.loggersLock.Lock()
	defer e.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			e.loggers = append(e.loggers, l)
			e.framer.ConnectLogger(l)
		}
	}
}
