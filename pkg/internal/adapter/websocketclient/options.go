package websocketclient

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithURL sets the ws:// or wss:// URL of the device bridge.
func WithURL(url string) types.Option[*WebSocketTransport] {
	return func(t *WebSocketTransport) { t.url = url }
}

// WithHeader adds a handshake header.
func WithHeader(key, value string) types.Option[*WebSocketTransport] {
	return func(t *WebSocketTransport) {
		if key != "" {
			t.headers[key] = value
		}
	}
}

// WithHeaders adds handshake headers.
func WithHeaders(headers map[string]string) types.Option[*WebSocketTransport] {
	return func(t *WebSocketTransport) {
		for k, v := range headers {
			t.headers[k] = v
		}
	}
}

// WithReadLimit caps the size of one inbound message.
func WithReadLimit(limit int64) types.Option[*WebSocketTransport] {
	return func(t *WebSocketTransport) {
		if limit > 0 {
			t.readLimit = limit
		}
	}
}

// WithWriteTimeout bounds each control token write.
func WithWriteTimeout(timeout time.Duration) types.Option[*WebSocketTransport] {
	return func(t *WebSocketTransport) { t.writeTimeout = timeout }
}

// WithTLS configures wss:// dialling.
func WithTLS(settings TLSSettings) types.Option[*WebSocketTransport] {
	return func(t *WebSocketTransport) { t.tlsSettings = &settings }
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[*WebSocketTransport] {
	return func(t *WebSocketTransport) { t.ConnectLogger(l...) }
}

// WithSensor attaches sensors.
func WithSensor(s ...types.Sensor) types.Option[*WebSocketTransport] {
	return func(t *WebSocketTransport) { t.ConnectSensor(s...) }
}
