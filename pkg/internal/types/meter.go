package types

import (
	"context"
	"time"
)

const (
	MetricCurrentCpuPercentage = "current_cpu_percentage"
	MetricCurrentRamPercentage = "current_ram_percentage"

	MetricSessionStartedCount   = "session_started_count"
	MetricSessionCompletedCount = "session_completed_count"
	MetricSessionCancelledCount = "session_cancelled_count"
	MetricSessionFailedCount    = "session_failed_count"

	MetricRecordAcceptedCount = "record_accepted_count"
	MetricLineRejectedCount   = "line_rejected_count"
	MetricObserverDropCount   = "observer_drop_count"
	MetricRecordsPerSecond    = "records_per_second"

	MetricAnalysisCount       = "analysis_count"
	MetricChannelSkippedCount = "channel_skipped_count"

	MetricPublishSuccessCount = "publish_success_count"
	MetricPublishErrorCount   = "publish_error_count"
	MetricS3PutSuccessCount   = "s3_put_success_count"
	MetricS3PutErrorCount     = "s3_put_error_count"

	MetricHTTPRequestMadeCount      = "http_request_made_count"
	MetricHTTPRequestCompletedCount = "http_request_completed_count"
	MetricHTTPClientErrorCount      = "http_client_error_count"
	MetricHTTPServerErrorCount      = "http_server_error_count"

	MetricCircuitBreakerTripCount  = "circuit_breaker_trip_count"
	MetricCircuitBreakerResetCount = "circuit_breaker_reset_count"
	MetricCircuitBreakerDropCount  = "circuit_breaker_dropped_count"
)

// Meter accumulates counters from one or more sensors and reports them through loggers.
type Meter interface {
	IncrementCount(metric string)
	AddCount(metric string, delta uint64)
	GetMetricCount(metric string) uint64
	SetMetricPercentage(metric string, value float64)
	GetMetricPercentage(metric string) float64

	// Snapshot returns every counter and gauge currently known to the meter.
	Snapshot() map[string]float64

	// SampleResources refreshes the CPU and memory gauges.
	SampleResources()

	// Report logs the current snapshot at info level.
	Report()

	// Monitor samples and reports at the given interval until ctx is done.
	Monitor(ctx context.Context, interval time.Duration)

	ConnectLogger(...Logger)
	GetComponentMetadata() ComponentMetadata
}
