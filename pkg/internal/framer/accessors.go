package framer

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// Pending returns a copy of the buffered partial line.
func (f *Framer) Pending() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.pending...)
}

// Reset clears the pending buffer and counters.
func (f *Framer) Reset() {
	f.mu.Lock()
	f.pending = nil
	f.lines, f.accepted, f.rejected = 0, 0, 0
	f.mu.Unlock()
}

// Stats returns the number of non-blank lines seen, accepted and rejected since the last Reset.
func (f *Framer) Stats() (lines, accepted, rejected uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lines, f.accepted, f.rejected
}

// GetComponentMetadata returns the framer metadata.
func (f *Framer) GetComponentMetadata() types.ComponentMetadata {
	return f.componentMetadata
}

// ConnectSensor attaches sensors notified for every accepted record and rejected line.
func (f *Framer) ConnectSensor(sensors ...types.Sensor) {
	for _, s := range sensors {
		if s != nil {
			f.sensors = append(f.sensors, s)
		}
	}
}

// ConnectLogger attaches loggers.
func (f *Framer) ConnectLogger(loggers ...types.Logger) {
	f.loggersLock.Lock()
	defer f.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			f.loggers = append(f.loggers, l)
		}
	}
}
