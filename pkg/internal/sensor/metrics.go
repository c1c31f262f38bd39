package sensor

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

func (s *Sensor) snapshotMeters() []types.Meter {
	s.metersLock.Lock()
	meters := append([]types.Meter(nil), s.meters...)
	s.metersLock.Unlock()
	return meters
}

func (s *Sensor) incrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.IncrementCount(metric)
	}
}

// decorateCallbacks appends the meter bookkeeping hooks so every sensor feeds its meters.
func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	return append(options,
		WithOnStartFunc(func(c types.ComponentMetadata) {
			s.incrementMeterCounters(types.MetricSessionStartedCount)
		}),
		WithOnCompleteFunc(func(c types.ComponentMetadata, summary types.SessionSummary) {
			s.incrementMeterCounters(types.MetricSessionCompletedCount)
			s.recordThroughput(summary)
		}),
		WithOnCancelFunc(func(c types.ComponentMetadata, summary types.SessionSummary) {
			s.incrementMeterCounters(types.MetricSessionCancelledCount)
			s.recordThroughput(summary)
		}),
		WithOnErrorFunc(func(c types.ComponentMetadata, err error) {
			if c.Type == "ACQUISITION" {
				s.incrementMeterCounters(types.MetricSessionFailedCount)
			}
		}),
		WithOnRecordFunc(func(c types.ComponentMetadata, rec types.Record) {
			s.incrementMeterCounters(types.MetricRecordAcceptedCount)
		}),
		WithOnRejectFunc(func(c types.ComponentMetadata, line string, reason string) {
			s.incrementMeterCounters(types.MetricLineRejectedCount)
		}),
		WithOnObserverDropFunc(func(c types.ComponentMetadata, dropped uint64) {
			s.incrementMeterCounters(types.MetricObserverDropCount)
		}),
		WithOnAnalysisCompleteFunc(func(c types.ComponentMetadata, result types.AnalysisResult) {
			s.incrementMeterCounters(types.MetricAnalysisCount)
		}),
		WithOnChannelSkippedFunc(func(c types.ComponentMetadata, channel int, reason string) {
			s.incrementMeterCounters(types.MetricChannelSkippedCount)
		}),
		WithOnPublishSuccessFunc(func(c types.ComponentMetadata, topic string, bytes int, dur time.Duration) {
			s.incrementMeterCounters(types.MetricPublishSuccessCount)
		}),
		WithOnPublishErrorFunc(func(c types.ComponentMetadata, topic string, err error) {
			s.incrementMeterCounters(types.MetricPublishErrorCount)
		}),
		WithOnS3PutSuccessFunc(func(c types.ComponentMetadata, bucket string, key string, bytes int, dur time.Duration) {
			s.incrementMeterCounters(types.MetricS3PutSuccessCount)
		}),
		WithOnS3PutErrorFunc(func(c types.ComponentMetadata, bucket string, key string, err error) {
			s.incrementMeterCounters(types.MetricS3PutErrorCount)
		}),
		WithOnHTTPClientRequestStartFunc(func(c types.ComponentMetadata) {
			s.incrementMeterCounters(types.MetricHTTPRequestMadeCount)
		}),
		WithOnHTTPClientErrorFunc(func(c types.ComponentMetadata, err error) {
			s.incrementMeterCounters(types.MetricHTTPClientErrorCount)
		}),
		WithOnHTTPServerErrorFunc(func(c types.ComponentMetadata, err error) {
			s.incrementMeterCounters(types.MetricHTTPServerErrorCount)
		}),
		WithOnHTTPClientRequestCompleteFunc(func(c types.ComponentMetadata) {
			s.incrementMeterCounters(types.MetricHTTPRequestCompletedCount)
		}),
		WithOnCircuitBreakerTripFunc(func(c types.ComponentMetadata, at int64, nextReset int64) {
			s.incrementMeterCounters(types.MetricCircuitBreakerTripCount)
		}),
		WithOnCircuitBreakerResetFunc(func(c types.ComponentMetadata, at int64) {
			s.incrementMeterCounters(types.MetricCircuitBreakerResetCount)
		}),
		WithOnCircuitBreakerDropFunc(func(c types.ComponentMetadata) {
			s.incrementMeterCounters(types.MetricCircuitBreakerDropCount)
		}),
	)
}

func (s *Sensor) recordThroughput(summary types.SessionSummary) {
	if summary.Elapsed <= 0 {
		return
	}
	rate := float64(summary.SampleCount) / summary.Elapsed.Seconds()
	for _, m := range s.snapshotMeters() {
		m.SetMetricPercentage(types.MetricRecordsPerSecond, rate)
	}
}
