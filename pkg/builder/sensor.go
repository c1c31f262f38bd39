package builder

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/sensor"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// NewSensor creates a sensor with the given callbacks.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithMeter feeds meter from the sensor's events.
func SensorWithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return sensor.WithMeter(meter...)
}

// SensorWithLogger adds a logger to the sensor.
func SensorWithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(logger...)
}

// SensorWithComponentMetadata adds component metadata overrides.
func SensorWithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return sensor.WithComponentMetadata(name, id)
}

func SensorWithOnStartFunc(callback ...func(ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStartFunc(callback...)
}

func SensorWithOnStateChangeFunc(callback ...func(ComponentMetadata, SessionState, SessionState)) types.Option[types.Sensor] {
	return sensor.WithOnStateChangeFunc(callback...)
}

func SensorWithOnCompleteFunc(callback ...func(ComponentMetadata, SessionSummary)) types.Option[types.Sensor] {
	return sensor.WithOnCompleteFunc(callback...)
}

func SensorWithOnCancelFunc(callback ...func(ComponentMetadata, SessionSummary)) types.Option[types.Sensor] {
	return sensor.WithOnCancelFunc(callback...)
}

func SensorWithOnErrorFunc(callback ...func(ComponentMetadata, error)) types.Option[types.Sensor] {
	return sensor.WithOnErrorFunc(callback...)
}

func SensorWithOnRecordFunc(callback ...func(ComponentMetadata, Record)) types.Option[types.Sensor] {
	return sensor.WithOnRecordFunc(callback...)
}

// SensorWithOnRejectFunc registers a callback receiving the rejected line and the reason.
func SensorWithOnRejectFunc(callback ...func(c ComponentMetadata, line string, reason string)) types.Option[types.Sensor] {
	return sensor.WithOnRejectFunc(callback...)
}

func SensorWithOnObserverDropFunc(callback ...func(ComponentMetadata, uint64)) types.Option[types.Sensor] {
	return sensor.WithOnObserverDropFunc(callback...)
}

func SensorWithOnAnalysisCompleteFunc(callback ...func(ComponentMetadata, AnalysisResult)) types.Option[types.Sensor] {
	return sensor.WithOnAnalysisCompleteFunc(callback...)
}

func SensorWithOnChannelSkippedFunc(callback ...func(c ComponentMetadata, channel int, reason string)) types.Option[types.Sensor] {
	return sensor.WithOnChannelSkippedFunc(callback...)
}

func SensorWithOnPublishSuccessFunc(callback ...func(c ComponentMetadata, topic string, bytes int, dur time.Duration)) types.Option[types.Sensor] {
	return sensor.WithOnPublishSuccessFunc(callback...)
}

func SensorWithOnPublishErrorFunc(callback ...func(c ComponentMetadata, topic string, err error)) types.Option[types.Sensor] {
	return sensor.WithOnPublishErrorFunc(callback...)
}

func SensorWithOnS3PutSuccessFunc(callback ...func(c ComponentMetadata, bucket, key string, bytes int, dur time.Duration)) types.Option[types.Sensor] {
	return sensor.WithOnS3PutSuccessFunc(callback...)
}

func SensorWithOnS3PutErrorFunc(callback ...func(c ComponentMetadata, bucket, key string, err error)) types.Option[types.Sensor] {
	return sensor.WithOnS3PutErrorFunc(callback...)
}

func SensorWithOnHTTPClientErrorFunc(callback ...func(ComponentMetadata, error)) types.Option[types.Sensor] {
	return sensor.WithOnHTTPClientErrorFunc(callback...)
}

func SensorWithOnCircuitBreakerTripFunc(callback ...func(c ComponentMetadata, at int64, nextReset int64)) types.Option[types.Sensor] {
	return sensor.WithOnCircuitBreakerTripFunc(callback...)
}

func SensorWithOnHTTPServerErrorFunc(callback ...func(ComponentMetadata, error)) types.Option[types.Sensor] {
	return sensor.WithOnHTTPServerErrorFunc(callback...)
}
