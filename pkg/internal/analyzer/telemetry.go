package analyzer

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// NotifyLoggers emits a log entry to all configured loggers.
func (a *Analyzer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
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

func (a *Analyzer) notifySkipped(channel int, reason string, err error) {
	for _, s := range a.sensors {
		s.InvokeOnChannelSkipped(a.componentMetadata, channel, reason)
	}
	kv := []interface{}{"component", a.componentMetadata, "event", "analyze_channel", "result", "SKIPPED",
		"channel", channel, "reason", reason}
	if err != nil {
		kv = append(kv, "error", err)
	}
	a.NotifyLoggers(types.DebugLevel, "Analyze: channel skipped", kv...)
}

func (a *Analyzer) notifyComplete(result types.AnalysisResult) {
	for _, s := range a.sensors {
		s.InvokeOnAnalysisComplete(a.componentMetadata, result)
	}
	a.NotifyLoggers(types.InfoLevel, "Analyze: complete",
		"component", a.componentMetadata, "event", "analyze", "result", "SUCCESS",
		"samples", result.TotalSamples,
		"combined_avg", result.Combined.Average,
		"combined_min", result.Combined.Minimum,
		"combined_max", result.Combined.Maximum,
		"respiration_avg", result.Respiration.Average)
}
