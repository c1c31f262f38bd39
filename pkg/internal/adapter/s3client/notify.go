package s3client

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// NotifyLoggers sends a message to all attached loggers at or below level.
func (a *S3ClientAdapter) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range a.snapshotLoggers() {
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

func (a *S3ClientAdapter) snapshotLoggers() []types.Logger {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	return append([]types.Logger(nil), a.loggers...)
}

func (a *S3ClientAdapter) snapshotSensors() []types.Sensor {
	a.sensorLock.Lock()
	defer a.sensorLock.Unlock()
	return append([]types.Sensor(nil), a.sensors...)
}
