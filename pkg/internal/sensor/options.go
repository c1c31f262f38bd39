package sensor

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a Sensor.
func WithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectLogger(logger...)
	}
}

// WithMeter connects meters that receive counter updates for every hook.
func WithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectMeter(meter...)
	}
}

// WithComponentMetadata overrides the sensor name and id.
func WithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.SetComponentMetadata(name, id)
	}
}

// WithOnStartFunc registers callbacks through RegisterOnStart.
func WithOnStartFunc(callback ...func(types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStart(callback...)
	}
}

// WithOnStateChangeFunc registers callbacks through RegisterOnStateChange.
func WithOnStateChangeFunc(callback ...func(types.ComponentMetadata, types.SessionState, types.SessionState)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStateChange(callback...)
	}
}

// WithOnCompleteFunc registers callbacks through RegisterOnComplete.
func WithOnCompleteFunc(callback ...func(types.ComponentMetadata, types.SessionSummary)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnComplete(callback...)
	}
}

// WithOnCancelFunc registers callbacks through RegisterOnCancel.
func WithOnCancelFunc(callback ...func(types.ComponentMetadata, types.SessionSummary)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnCancel(callback...)
	}
}

// WithOnErrorFunc registers callbacks through RegisterOnError.
func WithOnErrorFunc(callback ...func(types.ComponentMetadata, error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnError(callback...)
	}
}

// WithOnRecordFunc registers callbacks through RegisterOnRecord.
func WithOnRecordFunc(callback ...func(types.ComponentMetadata, types.Record)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnRecord(callback...)
	}
}

// WithOnRejectFunc registers callbacks through RegisterOnReject.
func WithOnRejectFunc(callback ...func(types.ComponentMetadata, string, string)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnReject(callback...)
	}
}

// WithOnObserverDropFunc registers callbacks through RegisterOnObserverDrop.
func WithOnObserverDropFunc(callback ...func(types.ComponentMetadata, uint64)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnObserverDrop(callback...)
	}
}

// WithOnAnalysisCompleteFunc registers callbacks through RegisterOnAnalysisComplete.
func WithOnAnalysisCompleteFunc(callback ...func(types.ComponentMetadata, types.AnalysisResult)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnAnalysisComplete(callback...)
	}
}

// WithOnChannelSkippedFunc registers callbacks through RegisterOnChannelSkipped.
func WithOnChannelSkippedFunc(callback ...func(types.ComponentMetadata, int, string)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnChannelSkipped(callback...)
	}
}

// WithOnPublishSuccessFunc registers callbacks through RegisterOnPublishSuccess.
func WithOnPublishSuccessFunc(callback ...func(types.ComponentMetadata, string, int, time.Duration)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnPublishSuccess(callback...)
	}
}

// WithOnPublishErrorFunc registers callbacks through RegisterOnPublishError.
func WithOnPublishErrorFunc(callback ...func(types.ComponentMetadata, string, error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnPublishError(callback...)
	}
}

// WithOnS3PutSuccessFunc registers callbacks through RegisterOnS3PutSuccess.
func WithOnS3PutSuccessFunc(callback ...func(types.ComponentMetadata, string, string, int, time.Duration)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnS3PutSuccess(callback...)
	}
}

// WithOnS3PutErrorFunc registers callbacks through RegisterOnS3PutError.
func WithOnS3PutErrorFunc(callback ...func(types.ComponentMetadata, string, string, error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnS3PutError(callback...)
	}
}

// WithOnHTTPClientRequestStartFunc registers callbacks through RegisterOnHTTPClientRequestStart.
func WithOnHTTPClientRequestStartFunc(callback ...func(types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnHTTPClientRequestStart(callback...)
	}
}

// WithOnHTTPClientErrorFunc registers callbacks through RegisterOnHTTPClientError.
func WithOnHTTPClientErrorFunc(callback ...func(types.ComponentMetadata, error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnHTTPClientError(callback...)
	}
}

// WithOnHTTPClientRequestCompleteFunc registers callbacks through RegisterOnHTTPClientRequestComplete.
func WithOnHTTPClientRequestCompleteFunc(callback ...func(types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnHTTPClientRequestComplete(callback...)
	}
}

// WithOnCircuitBreakerTripFunc registers callbacks through RegisterOnCircuitBreakerTrip.
func WithOnCircuitBreakerTripFunc(callback ...func(types.ComponentMetadata, int64, int64)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnCircuitBreakerTrip(callback...)
	}
}

// WithOnCircuitBreakerResetFunc registers callbacks through RegisterOnCircuitBreakerReset.
func WithOnCircuitBreakerResetFunc(callback ...func(types.ComponentMetadata, int64)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnCircuitBreakerReset(callback...)
	}
}

// WithOnCircuitBreakerDropFunc registers callbacks through RegisterOnCircuitBreakerDrop.
func WithOnCircuitBreakerDropFunc(callback ...func(types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnCircuitBreakerDrop(callback...)
	}
}

// WithOnHTTPServerErrorFunc registers callbacks through RegisterOnHTTPServerError.
func WithOnHTTPServerErrorFunc(callback ...func(types.ComponentMetadata, error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnHTTPServerError(callback...)
	}
}
