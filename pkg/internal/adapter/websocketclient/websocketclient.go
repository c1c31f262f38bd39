// Package websocketclient implements the device transport over a websocket bridge. Control tokens
// are sent as text messages and every message received while streaming is delivered as one chunk.
package websocketclient

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"nhooyr.io/websocket"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// WebSocketTransport is a types.Transport backed by one websocket connection.
type WebSocketTransport struct {
	componentMetadata types.ComponentMetadata

	configLock   sync.Mutex
	url          string
	headers      map[string]string
	readLimit    int64
	writeTimeout time.Duration
	tlsSettings  *TLSSettings

	connLock   sync.Mutex
	conn       *websocket.Conn
	connCancel context.CancelFunc
	readDone   chan struct{}
	connected  int32

	deliverLock sync.Mutex
	onChunk     func([]byte)

	faults chan error

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorLock  sync.Mutex
}

var (
	_ types.Transport              = (*WebSocketTransport)(nil)
	_ types.TransportFaultNotifier = (*WebSocketTransport)(nil)
)

// NewWebSocketTransport returns an unconnected transport.
func NewWebSocketTransport(options ...types.Option[*WebSocketTransport]) *WebSocketTransport {
	t := &WebSocketTransport{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "WEBSOCKET_TRANSPORT",
		},
		headers:      make(map[string]string),
		readLimit:    1 << 20,
		writeTimeout: 5 * time.Second,
		faults:       make(chan error, 1),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// GetComponentMetadata returns the transport metadata.
func (t *WebSocketTransport) GetComponentMetadata() types.ComponentMetadata {
	return t.componentMetadata
}

// ConnectLogger attaches loggers.
func (t *WebSocketTransport) ConnectLogger(loggers ...types.Logger) {
	t.loggersLock.Lock()
	defer t.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			t.loggers = append(t.loggers, l)
		}
	}
}

// ConnectSensor attaches sensors. Link failures are reported through InvokeOnError.
func (t *WebSocketTransport) ConnectSensor(sensors ...types.Sensor) {
	t.sensorLock.Lock()
	defer t.sensorLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			t.sensors = append(t.sensors, s)
		}
	}
}

// IsConnected reports whether the connection is open.
func (t *WebSocketTransport) IsConnected() bool {
	return atomic.LoadInt32(&t.connected) == 1
}

// Faults delivers link failures observed while streaming.
func (t *WebSocketTransport) Faults() <-chan error {
	return t.faults
}

func cloneHeaders(in map[string]string) http.Header {
	hdr := http.Header{}
	for k, v := range in {
		hdr.Add(k, v)
	}
	return hdr
}
