package logschema

// Log schema constants for npulse structured logs.
const (
	SchemaID    = "npulse.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"
	FieldSession   = "session_id"
	FieldChannel   = "channel"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
