package builder

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/adapter/websocketclient"
	"github.com/joeydtaylor/npulse/pkg/internal/transport"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type (
	TransportBridge    = transport.Bridge
	Simulator          = transport.Simulator
	WebSocketTransport = websocketclient.WebSocketTransport
	WebSocketTLS       = websocketclient.TLSSettings
)

// NewTransportBridge serialises calls into t on a dedicated worker with per-call timeouts.
func NewTransportBridge(t types.Transport, options ...types.Option[*transport.Bridge]) *transport.Bridge {
	return transport.NewBridge(t, options...)
}

func BridgeWithCallTimeout(d time.Duration) types.Option[*transport.Bridge] {
	return transport.WithCallTimeout(d)
}

func BridgeWithLogger(loggers ...types.Logger) types.Option[*transport.Bridge] {
	return transport.WithLogger(loggers...)
}

// NewSimulator creates a simulated three-channel PPG device.
func NewSimulator(options ...types.Option[*transport.Simulator]) *transport.Simulator {
	return transport.NewSimulator(options...)
}

func SimulatorWithSampleRate(rate float64) types.Option[*transport.Simulator] {
	return transport.WithSampleRate(rate)
}

func SimulatorWithHeartRate(bpm float64) types.Option[*transport.Simulator] {
	return transport.WithHeartRate(bpm)
}

func SimulatorWithBreathingRate(bpm float64) types.Option[*transport.Simulator] {
	return transport.WithBreathingRate(bpm)
}

func SimulatorWithEmitInterval(d time.Duration) types.Option[*transport.Simulator] {
	return transport.WithEmitInterval(d)
}

func SimulatorWithSeed(seed int64) types.Option[*transport.Simulator] {
	return transport.WithSeed(seed)
}

// NewWebSocketTransport creates a device transport over a websocket bridge. Call Connect before use.
func NewWebSocketTransport(options ...types.Option[*websocketclient.WebSocketTransport]) *websocketclient.WebSocketTransport {
	return websocketclient.NewWebSocketTransport(options...)
}

func WebSocketWithURL(url string) types.Option[*websocketclient.WebSocketTransport] {
	return websocketclient.WithURL(url)
}

func WebSocketWithHeaders(headers map[string]string) types.Option[*websocketclient.WebSocketTransport] {
	return websocketclient.WithHeaders(headers)
}

func WebSocketWithReadLimit(limit int64) types.Option[*websocketclient.WebSocketTransport] {
	return websocketclient.WithReadLimit(limit)
}

func WebSocketWithTLS(settings websocketclient.TLSSettings) types.Option[*websocketclient.WebSocketTransport] {
	return websocketclient.WithTLS(settings)
}

func WebSocketWithLogger(loggers ...types.Logger) types.Option[*websocketclient.WebSocketTransport] {
	return websocketclient.WithLogger(loggers...)
}

func WebSocketWithSensor(sensors ...types.Sensor) types.Option[*websocketclient.WebSocketTransport] {
	return websocketclient.WithSensor(sensors...)
}
