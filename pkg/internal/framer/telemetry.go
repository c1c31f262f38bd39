package framer

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// NotifyLoggers emits a log entry to all configured loggers.
func (f *Framer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	f.loggersLock.Lock()
	loggers := append([]types.Logger(nil), f.loggers...)
	f.loggersLock.Unlock()

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

func (f *Framer) notifyRecord(rec types.Record) {
	for _, s := range f.sensors {
		s.InvokeOnRecord(f.componentMetadata, rec)
	}
}

func (f *Framer) notifyReject(line string, reason string) {
	for _, s := range f.sensors {
		s.InvokeOnReject(f.componentMetadata, line, reason)
	}
	f.NotifyLoggers(types.DebugLevel, "Write: rejected line",
		"component", f.componentMetadata, "event", "reject", "result", "DISCARDED", "reason", reason, "line", line)
}
