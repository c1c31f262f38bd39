// Package builder is the public entry point to npulse. It re-exports the internal components with
// flat, prefixed constructor and option names.
package builder

import (
	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

type (
	ComponentMetadata = types.ComponentMetadata
	Record            = types.Record
	RateEstimate      = types.RateEstimate
	ChannelResult     = types.ChannelResult
	AnalysisResult    = types.AnalysisResult
	SessionState      = types.SessionState
	SessionSummary    = types.SessionSummary
	Transport         = types.Transport
	Engine            = types.Engine
	Analyzer          = types.Analyzer
	Logger            = types.Logger
	Sensor            = types.Sensor
	Meter             = types.Meter
	CircuitBreaker    = types.CircuitBreaker
	PublishMessage    = types.PublishMessage
	TransportError    = types.TransportError
	HTTPError         = types.HTTPError
)

const ChannelCount = types.ChannelCount

// Session states.
const (
	SessionIdle       = types.SessionIdle
	SessionArmed      = types.SessionArmed
	SessionCollecting = types.SessionCollecting
	SessionCompleted  = types.SessionCompleted
	SessionCancelled  = types.SessionCancelled
	SessionFailed     = types.SessionFailed
)

// Sentinel errors.
var (
	ErrInsufficientData = types.ErrInsufficientData
	ErrResourceNotFound = types.ErrResourceNotFound
	ErrTransportFault   = types.ErrTransportFault
	ErrTransportTimeout = types.ErrTransportTimeout
	ErrSessionActive    = types.ErrSessionActive
	ErrNotConnected     = types.ErrNotConnected
	ErrNoData           = types.ErrNoData
	ErrCircuitOpen      = types.ErrCircuitOpen
)

// NewComponentID returns a fresh unique component ID.
func NewComponentID() string {
	return utils.GenerateUniqueHash()
}
