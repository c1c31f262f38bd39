package websocketclient

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// NotifyLoggers sends a message to all attached loggers at or below level.
func (t *WebSocketTransport) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	t.loggersLock.Lock()
	loggers := append([]types.Logger(nil), t.loggers...)
	t.loggersLock.Unlock()

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

func (t *WebSocketTransport) snapshotSensors() []types.Sensor {
	t.sensorLock.Lock()
	defer t.sensorLock.Unlock()
	return append([]types.Sensor(nil), t.sensors...)
}
