package sensor

import (
	"sync"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// Sensor provides callback hooks for component telemetry.
type Sensor struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	OnStart            []func(types.ComponentMetadata)
	OnStateChange      []func(types.ComponentMetadata, types.SessionState, types.SessionState)
	OnComplete         []func(types.ComponentMetadata, types.SessionSummary)
	OnCancel           []func(types.ComponentMetadata, types.SessionSummary)
	OnError            []func(types.ComponentMetadata, error)
	OnRecord           []func(types.ComponentMetadata, types.Record)
	OnReject           []func(types.ComponentMetadata, string, string)
	OnObserverDrop     []func(types.ComponentMetadata, uint64)
	OnAnalysisComplete []func(types.ComponentMetadata, types.AnalysisResult)
	OnChannelSkipped   []func(types.ComponentMetadata, int, string)

	OnPublishSuccess []func(types.ComponentMetadata, string, int, time.Duration)
	OnPublishError   []func(types.ComponentMetadata, string, error)
	OnS3PutSuccess   []func(types.ComponentMetadata, string, string, int, time.Duration)
	OnS3PutError     []func(types.ComponentMetadata, string, string, error)

	OnHTTPClientRequestStart    []func(types.ComponentMetadata)
	OnHTTPClientError           []func(types.ComponentMetadata, error)
	OnHTTPClientRequestComplete []func(types.ComponentMetadata)
	OnHTTPServerError           []func(types.ComponentMetadata, error)

	OnCircuitBreakerTrip  []func(types.ComponentMetadata, int64, int64)
	OnCircuitBreakerReset []func(types.ComponentMetadata, int64)
	OnCircuitBreakerDrop  []func(types.ComponentMetadata)

	callbackLock sync.Mutex
	loggers      []types.Logger
	loggersLock  sync.Mutex
	meters       []types.Meter
	metersLock   sync.Mutex
}

// NewSensor constructs a Sensor with optional configuration.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	s := &Sensor{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SENSOR",
		},
	}

	for _, opt := range s.decorateCallbacks(options...) {
		if opt == nil {
			continue
		}
		opt(s)
	}

	return s
}
