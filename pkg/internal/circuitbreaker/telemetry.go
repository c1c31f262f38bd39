package circuitbreaker

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// NotifyLoggers emits a log entry to all configured loggers.
func (cb *CircuitBreaker) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range cb.snapshotLoggers() {
		if logger == nil || logger.GetLevel() > level {
			continue
		}

		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

func (cb *CircuitBreaker) notifyDrop() {
	metadata := cb.snapshotMetadata()
	for _, s := range cb.snapshotSensors() {
		s.InvokeOnCircuitBreakerDrop(metadata)
	}
}

func (cb *CircuitBreaker) notifyTrip(time int64, resetTime int64) {
	metadata := cb.snapshotMetadata()
	for _, s := range cb.snapshotSensors() {
		s.InvokeOnCircuitBreakerTrip(metadata, time, resetTime)
	}
}

func (cb *CircuitBreaker) notifyReset(time int64) {
	metadata := cb.snapshotMetadata()
	for _, s := range cb.snapshotSensors() {
		s.InvokeOnCircuitBreakerReset(metadata, time)
	}
}
