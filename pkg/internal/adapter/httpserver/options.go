package httpserver

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/acquisition"
	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithAddress sets the listen address, e.g. ":8080".
func WithAddress(address string) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) {
		if address != "" {
			h.address = address
		}
	}
}

// WithTimeout bounds reading a request. Responses are not bounded so live streams stay open.
func WithTimeout(timeout time.Duration) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) {
		if timeout > 0 {
			h.timeout = timeout
		}
	}
}

// WithMaxBody caps request bodies.
func WithMaxBody(bytes int64) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) {
		if bytes > 0 {
			h.maxBody = bytes
		}
	}
}

// WithHeader adds a default response header.
func WithHeader(key, value string) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.headers[key] = value }
}

// WithTLS serves HTTPS with the given key pair.
func WithTLS(certFile, keyFile string) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) {
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			h.configErr = fmt.Errorf("load tls key pair: %w", err)
			return
		}
		h.tlsConfig = &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
	}
}

// WithEngine enables the session endpoints.
func WithEngine(e SessionEngine) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.engine = e }
}

// WithLiveUpdates feeds the /stream endpoint, typically from an acquisition.Observer.
func WithLiveUpdates(updates <-chan acquisition.Update) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.updates = updates }
}

func WithAnalyzer(a types.Analyzer) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.analyzer = a }
}

func WithLoader(l CaptureLoader) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.loader = l }
}

// WithSessionDefaults sets the session length used when a request gives none, and where and how
// finished sessions are saved.
func WithSessionDefaults(duration time.Duration, saveDir string, c capture.Compression) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) {
		if duration > 0 {
			h.sessionDuration = duration
		}
		if saveDir != "" {
			h.saveDir = saveDir
		}
		h.compression = c
	}
}

// WithSaveDir sets the directory listed by /files. It is also the only place /analyze reads local
// captures from.
func WithSaveDir(dir string) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) {
		if dir != "" {
			h.saveDir = dir
		}
	}
}

// WithRemoteSources lets /analyze fetch http(s) URLs through the loader. Off by default.
func WithRemoteSources(allow bool) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.remoteSources = allow }
}

// WithSessionHook registers fn to run after every finished session.
func WithSessionHook(fn SessionHook) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) {
		if fn != nil {
			h.hooks = append(h.hooks, fn)
		}
	}
}

// WithStreamBuffer sets the per-subscriber buffer of the live stream.
func WithStreamBuffer(size int) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.hub = newHub(size) }
}

func WithLogger(l ...types.Logger) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.ConnectLogger(l...) }
}

func WithSensor(s ...types.Sensor) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.ConnectSensor(s...) }
}

func WithComponentMetadata(name string, id string) types.Option[*HTTPServerAdapter] {
	return func(h *HTTPServerAdapter) { h.SetComponentMetadata(name, id) }
}
