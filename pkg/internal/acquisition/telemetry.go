package acquisition

import (
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// NotifyLoggers emits a log entry to all configured loggers.
func (e *Engine) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	e.loggersLock.Lock()
	loggers := append([]types.Logger(nil), e.loggers...)
	e.loggersLock.Unlock()

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

func (e *Engine) notifyStart(s *session) {
	for _, sn := range e.sensors {
		sn.InvokeOnStart(e.componentMetadata)
	}
	e.NotifyLoggers(types.InfoLevel, "Collect: session armed",
		"component", e.componentMetadata, "event", "arm", "result", "SUCCESS",
		"session_id", s.id, "duration", s.duration)
}

func (e *Engine) notifyStateChange(from, to types.SessionState) {
	for _, sn := range e.sensors {
		sn.InvokeOnStateChange(e.componentMetadata, from, to)
	}
	e.NotifyLoggers(types.DebugLevel, "Collect: state change",
		"component", e.componentMetadata, "event", "transition", "result", "SUCCESS",
		"from", from.String(), "to", to.String())
}

func (e *Engine) notifyObserverDrop(dropped uint64) {
	for _, sn := range e.sensors {
		sn.InvokeOnObserverDrop(e.componentMetadata, dropped)
	}
}

func (e *Engine) notifyTerminal(state types.SessionState, summary types.SessionSummary, err error) {
	switch state {
	case types.SessionCompleted:
		for _, sn := range e.sensors {
			sn.InvokeOnComplete(e.componentMetadata, summary)
		}
	case types.SessionCancelled:
		for _, sn := range e.sensors {
			sn.InvokeOnCancel(e.componentMetadata, summary)
		}
	case types.SessionFailed:
		for _, sn := range e.sensors {
			sn.InvokeOnError(e.componentMetadata, err)
		}
	}

	level, result := types.InfoLevel, "SUCCESS"
	if err != nil {
		level, result = types.ErrorLevel, "FAILURE"
	}
	kv := []interface{}{"component", e.componentMetadata, "event", "collect", "result", result,
		"session_id", summary.ID, "state", summary.State, "samples", summary.SampleCount,
		"rejected", summary.Rejected, "observer_dropped", summary.Dropped, "elapsed", summary.Elapsed}
	if err != nil {
		kv = append(kv, "error", err)
	}
	e.NotifyLoggers(level, "Collect: session finished", kv...)
}
