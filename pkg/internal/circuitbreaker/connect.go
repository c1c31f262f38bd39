package circuitbreaker

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// ConnectSensor registers sensors for circuit breaker events.
func (cb *CircuitBreaker) ConnectSensor(sensors ...types.Sensor) {
	if len(sensors) == 0 {
		return
	}

	n := 0
	for _, s := range sensors {
		if s != nil {
			sensors[n] = s
			n++
		}
	}
	if n == 0 {
		return
	}
	sensors = sensors[:n]

	cb.configLock.Lock()
	cb.sensors = append(cb.sensors, sensors...)
	cb.configLock.Unlock()

	component := cb.snapshotMetadata()
	for _, s := range sensors {
		cb.NotifyLoggers(types.DebugLevel, "ConnectSensor: connected sensor", "component", component, "sensor", s.GetComponentMetadata())
	}
}

// ConnectLogger attaches loggers to the circuit breaker.
func (cb *CircuitBreaker) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}
	cb.loggersLock.Lock()
	cb.loggers = append(cb.loggers, loggers...)
	cb.loggersLock.Unlock()
}
