package internallogger

import (
	"strings"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"go.uber.org/zap"
)

// Log emits a log entry at the requested level. keysAndValues alternate string keys and values;
// a trailing key without a value and non-string keys are ignored.
func (z *ZapLoggerAdapter) Log(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	z.mu.Lock()
	logger := z.logger
	z.mu.Unlock()

	if logger == nil {
		return
	}
	ce := logger.Check(ConvertLevel(level), msg)
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, field(key, keysAndValues[i+1]))
	}
	ce.Write(fields...)
}

// field encodes the npulse domain values compactly; everything else goes through zap.Any.
func field(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case types.ComponentMetadata:
		return zap.Any(key, componentToLogMap(v))
	case *types.ComponentMetadata:
		if v == nil {
			return zap.Skip()
		}
		return zap.Any(key, componentToLogMap(*v))
	case types.Record:
		return zap.String(key, v.String())
	case types.SessionState:
		return zap.Stringer(key, v)
	case types.RateEstimate:
		return zap.Float64s(key, []float64{v.Average, v.Minimum, v.Maximum})
	case time.Duration:
		return zap.Duration(key, v)
	case error:
		return zap.NamedError(key, v)
	}
	return zap.Any(key, value)
}

func componentToLogMap(meta types.ComponentMetadata) map[string]string {
	m := map[string]string{"id": meta.ID, "type": meta.Type}
	if meta.Name != "" {
		m["name"] = meta.Name
	}
	return m
}

// Debug logs a debug message.
func (z *ZapLoggerAdapter) Debug(msg string, keysAndValues ...interface{}) {
	z.Log(types.DebugLevel, msg, keysAndValues...)
}

// Info logs an informational message.
func (z *ZapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	z.Log(types.InfoLevel, msg, keysAndValues...)
}

// Warn logs a warning message.
func (z *ZapLoggerAdapter) Warn(msg string, keysAndValues ...interface{}) {
	z.Log(types.WarnLevel, msg, keysAndValues...)
}

// Error logs an error message.
func (z *ZapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	z.Log(types.ErrorLevel, msg, keysAndValues...)
}

// DPanic logs a critical message.
func (z *ZapLoggerAdapter) DPanic(msg string, keysAndValues ...interface{}) {
	z.Log(types.DPanicLevel, msg, keysAndValues...)
}

// Panic logs a message and panics.
func (z *ZapLoggerAdapter) Panic(msg string, keysAndValues ...interface{}) {
	z.Log(types.PanicLevel, msg, keysAndValues...)
}

// Fatal logs a fatal message.
func (z *ZapLoggerAdapter) Fatal(msg string, keysAndValues ...interface{}) {
	z.Log(types.FatalLevel, msg, keysAndValues...)
}

// GetLevel returns the configured log level.
func (z *ZapLoggerAdapter) GetLevel() types.LogLevel {
	return convertZapLevel(z.atomicLevel.Level())
}

// SetLevel updates the logger's minimum level.
func (z *ZapLoggerAdapter) SetLevel(level types.LogLevel) {
	zapLevel := ConvertLevel(level)
	z.atomicLevel.SetLevel(zapLevel)
}

// Flush syncs the logger's outputs.
func (z *ZapLoggerAdapter) Flush() error {
	z.mu.Lock()
	logger := z.logger
	z.mu.Unlock()

	if logger == nil {
		return nil
	}

	err := logger.Sync()
	if err == nil || isTerminalSyncError(err) {
		return nil
	}
	return err
}

// isTerminalSyncError reports errors from syncing a tty or pipe, which cannot be fsynced.
func isTerminalSyncError(err error) bool {
	msg := err.Error()
	for _, s := range []string{"inappropriate ioctl for device", "bad file descriptor", "invalid argument"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
