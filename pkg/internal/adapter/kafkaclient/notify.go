package kafkaclient

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// NotifyLoggers sends a message to all attached loggers at or below level.
func (a *KafkaClientAdapter) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	a.loggersLock.Lock()
	loggers := append([]types.Logger(nil), a.loggers...)
	a.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}

func (a *KafkaClientAdapter) snapshotSensors() []types.Sensor {
	a.sensorLock.Lock()
	defer a.sensorLock.Unlock()
	return append([]types.Sensor(nil), a.sensors...)
}
