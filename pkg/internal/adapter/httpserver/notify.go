package httpserver

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// NotifyLoggers emits a log entry to all configured loggers.
func (h *HTTPServerAdapter) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	h.loggersLock.Lock()
	loggers := append([]types.Logger(nil), h.loggers...)
	h.loggersLock.Unlock()

	for _, logger := range loggers {
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
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}

func (h *HTTPServerAdapter) snapshotSensors() []types.Sensor {
	h.sensorsLock.Lock()
	defer h.sensorsLock.Unlock()
	return append([]types.Sensor(nil), h.sensors...)
}

func (h *HTTPServerAdapter) notifyServerError(route string, err error) {
	for _, s := range h.snapshotSensors() {
		if s == nil {
			continue
		}
		s.InvokeOnHTTPServerError(h.componentMetadata, err)
	}
	h.NotifyLoggers(types.WarnLevel, "Request failed",
		"component", h.componentMetadata, "event", "request", "result", "FAILURE",
		"route", route, "error", err)
}
