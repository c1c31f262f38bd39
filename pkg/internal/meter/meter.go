package meter

import (
	"sync"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

const defaultSampleWindow = 200 * time.Millisecond

// Meter keeps counters fed by sensors plus process resource gauges.
type Meter struct {
	componentMetadata types.ComponentMetadata

	mu           sync.Mutex
	counts       map[string]*uint64
	percentages  map[string]float64
	peaks        map[string]float64
	startTime    time.Time
	sampleWindow time.Duration

	loggers   []types.Logger
	loggersMu sync.Mutex
}

// NewMeter constructs a Meter with the standard npulse counters registered at zero.
func NewMeter(options ...types.Option[types.Meter]) types.Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		counts:       make(map[string]*uint64),
		percentages:  make(map[string]float64),
		peaks:        make(map[string]float64),
		startTime:    time.Now(),
		sampleWindow: defaultSampleWindow,
	}

	m.initializeMetrics()

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}

	return m
}

func (m *Meter) initializeMetrics() {
	for _, name := range counterNames {
		var v uint64
		m.counts[name] = &v
	}
}

var counterNames = []string{
	types.MetricSessionStartedCount,
	types.MetricSessionCompletedCount,
	types.MetricSessionCancelledCount,
	types.MetricSessionFailedCount,
	types.MetricRecordAcceptedCount,
	types.MetricLineRejectedCount,
	types.MetricObserverDropCount,
	types.MetricAnalysisCount,
	types.MetricChannelSkippedCount,
	types.MetricPublishSuccessCount,
	types.MetricPublishErrorCount,
	types.MetricS3PutSuccessCount,
	types.MetricS3PutErrorCount,
	types.MetricHTTPRequestMadeCount,
	types.MetricHTTPRequestCompletedCount,
	types.MetricHTTPClientErrorCount,
	types.MetricHTTPServerErrorCount,
	types.MetricCircuitBreakerTripCount,
	types.MetricCircuitBreakerResetCount,
	types.MetricCircuitBreakerDropCount,
}
