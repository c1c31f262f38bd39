package builder

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/meter"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Metric names kept by the meter.
const (
	MetricCurrentCpuPercentage     = types.MetricCurrentCpuPercentage
	MetricCurrentRamPercentage     = types.MetricCurrentRamPercentage
	MetricSessionStartedCount      = types.MetricSessionStartedCount
	MetricSessionCompletedCount    = types.MetricSessionCompletedCount
	MetricSessionCancelledCount    = types.MetricSessionCancelledCount
	MetricSessionFailedCount       = types.MetricSessionFailedCount
	MetricRecordAcceptedCount      = types.MetricRecordAcceptedCount
	MetricLineRejectedCount        = types.MetricLineRejectedCount
	MetricObserverDropCount        = types.MetricObserverDropCount
	MetricRecordsPerSecond         = types.MetricRecordsPerSecond
	MetricAnalysisCount            = types.MetricAnalysisCount
	MetricChannelSkippedCount      = types.MetricChannelSkippedCount
	MetricPublishSuccessCount      = types.MetricPublishSuccessCount
	MetricPublishErrorCount        = types.MetricPublishErrorCount
	MetricCircuitBreakerTripCount  = types.MetricCircuitBreakerTripCount
	MetricCircuitBreakerDropCount  = types.MetricCircuitBreakerDropCount
	MetricCircuitBreakerResetCount = types.MetricCircuitBreakerResetCount
)

// NewMeter creates a meter. Connect it to a sensor with SensorWithMeter.
func NewMeter(options ...types.Option[types.Meter]) types.Meter {
	return meter.NewMeter(options...)
}

// MeterWithLogger sets the logger reports are written to.
func MeterWithLogger(logger ...types.Logger) types.Option[types.Meter] {
	return meter.WithLogger(logger...)
}

// MeterWithSampleWindow sets the CPU sampling window.
func MeterWithSampleWindow(window time.Duration) types.Option[types.Meter] {
	return meter.WithSampleWindow(window)
}
