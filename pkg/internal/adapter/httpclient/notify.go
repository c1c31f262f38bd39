package httpclient

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// NotifyLoggers emits a log entry to all configured loggers.
func (hp *HTTPClientAdapter) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	hp.loggersLock.Lock()
	loggers := append([]types.Logger(nil), hp.loggers...)
	hp.loggersLock.Unlock()

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

func (hp *HTTPClientAdapter) snapshotSensors() []types.Sensor {
	hp.sensorLock.Lock()
	defer hp.sensorLock.Unlock()
	return append([]types.Sensor(nil), hp.sensors...)
}

func (hp *HTTPClientAdapter) notifyHTTPClientRequestStart() {
	for _, sensor := range hp.snapshotSensors() {
		sensor.InvokeOnHTTPClientRequestStart(hp.componentMetadata)
	}
}

func (hp *HTTPClientAdapter) notifyHTTPClientError(err error) {
	for _, sensor := range hp.snapshotSensors() {
		sensor.InvokeOnHTTPClientError(hp.componentMetadata, err)
	}
	hp.NotifyLoggers(types.DebugLevel, "Fetch: request failed",
		"component", hp.componentMetadata, "event", "fetch", "result", "FAILURE", "error", err)
}

func (hp *HTTPClientAdapter) notifyHTTPClientRequestComplete(url string, size int) {
	for _, sensor := range hp.snapshotSensors() {
		sensor.InvokeOnHTTPClientRequestComplete(hp.componentMetadata)
	}
	hp.NotifyLoggers(types.DebugLevel, "Fetch: complete",
		"component", hp.componentMetadata, "event", "fetch", "result", "SUCCESS", "url", url, "bytes", size)
}
