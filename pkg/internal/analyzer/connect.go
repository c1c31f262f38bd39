package analyzer

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// ConnectLogger attaches loggers.
func (a *Analyzer) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

// ConnectSensor attaches sensors notified on completion and skipped channels.
func (a *Analyzer) ConnectSensor(sensors ...types.Sensor) {
	for _, s := range sensors {
		if s != nil {
			a.sensors = append(a.sensors, s)
		}
	}
}

// GetComponentMetadata returns the analyzer metadata.
func (a *Analyzer) GetComponentMetadata() types.ComponentMetadata {
	return a.componentMetadata
}
