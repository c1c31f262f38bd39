package types

import "time"

// Sensor carries telemetry hooks for every component in the pipeline. Components invoke the
// hooks; callers register callbacks to observe them. Loggers and meters attached to the sensor
// receive the same events.
type Sensor interface {
	ConnectLogger(...Logger)
	ConnectMeter(...Meter)
	GetMeters() []Meter

	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)

	// NotifyLoggers sends a structured log message to all attached loggers.
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	// Session lifecycle
	RegisterOnStart(...func(ComponentMetadata))
	RegisterOnStateChange(...func(c ComponentMetadata, from SessionState, to SessionState))
	RegisterOnComplete(...func(c ComponentMetadata, summary SessionSummary))
	RegisterOnCancel(...func(c ComponentMetadata, summary SessionSummary))
	RegisterOnError(...func(c ComponentMetadata, err error))

	InvokeOnStart(ComponentMetadata)
	InvokeOnStateChange(c ComponentMetadata, from SessionState, to SessionState)
	InvokeOnComplete(c ComponentMetadata, summary SessionSummary)
	InvokeOnCancel(c ComponentMetadata, summary SessionSummary)
	InvokeOnError(c ComponentMetadata, err error)

	// Framing
	RegisterOnRecord(...func(c ComponentMetadata, rec Record))
	RegisterOnReject(...func(c ComponentMetadata, line string, reason string))
	RegisterOnObserverDrop(...func(c ComponentMetadata, dropped uint64))

	InvokeOnRecord(c ComponentMetadata, rec Record)
	InvokeOnReject(c ComponentMetadata, line string, reason string)
	InvokeOnObserverDrop(c ComponentMetadata, dropped uint64)

	// Analysis
	RegisterOnAnalysisComplete(...func(c ComponentMetadata, result AnalysisResult))
	RegisterOnChannelSkipped(...func(c ComponentMetadata, channel int, reason string))

	InvokeOnAnalysisComplete(c ComponentMetadata, result AnalysisResult)
	InvokeOnChannelSkipped(c ComponentMetadata, channel int, reason string)

	// Publishing and archival
	RegisterOnPublishSuccess(...func(c ComponentMetadata, topic string, bytes int, dur time.Duration))
	RegisterOnPublishError(...func(c ComponentMetadata, topic string, err error))
	RegisterOnS3PutSuccess(...func(c ComponentMetadata, bucket string, key string, bytes int, dur time.Duration))
	RegisterOnS3PutError(...func(c ComponentMetadata, bucket string, key string, err error))

	InvokeOnPublishSuccess(c ComponentMetadata, topic string, bytes int, dur time.Duration)
	InvokeOnPublishError(c ComponentMetadata, topic string, err error)
	InvokeOnS3PutSuccess(c ComponentMetadata, bucket string, key string, bytes int, dur time.Duration)
	InvokeOnS3PutError(c ComponentMetadata, bucket string, key string, err error)

	// HTTP client
	RegisterOnHTTPClientRequestStart(...func(ComponentMetadata))
	RegisterOnHTTPClientError(...func(ComponentMetadata, error))
	RegisterOnHTTPClientRequestComplete(...func(ComponentMetadata))

	InvokeOnHTTPClientRequestStart(ComponentMetadata)
	InvokeOnHTTPClientError(ComponentMetadata, error)
	InvokeOnHTTPClientRequestComplete(ComponentMetadata)

	RegisterOnHTTPServerError(...func(ComponentMetadata, error))
	InvokeOnHTTPServerError(ComponentMetadata, error)

	// Circuit breaker
	RegisterOnCircuitBreakerTrip(...func(c ComponentMetadata, at int64, nextReset int64))
	RegisterOnCircuitBreakerReset(...func(c ComponentMetadata, at int64))
	RegisterOnCircuitBreakerDrop(...func(ComponentMetadata))

	InvokeOnCircuitBreakerTrip(c ComponentMetadata, at int64, nextReset int64)
	InvokeOnCircuitBreakerReset(c ComponentMetadata, at int64)
	InvokeOnCircuitBreakerDrop(ComponentMetadata)
}
