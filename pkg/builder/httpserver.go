package builder

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/acquisition"
	"github.com/joeydtaylor/npulse/pkg/internal/adapter/httpserver"
	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type (
	HTTPServerAdapter       = httpserver.HTTPServerAdapter
	HTTPServerAdapterOption = types.Option[*httpserver.HTTPServerAdapter]
	SessionHook             = httpserver.SessionHook
)

// NewHTTPServerAdapter creates the capture, analysis and live-session API.
func NewHTTPServerAdapter(options ...types.Option[*httpserver.HTTPServerAdapter]) *httpserver.HTTPServerAdapter {
	return httpserver.NewHTTPServerAdapter(options...)
}

func HTTPServerAdapterWithAddress(address string) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithAddress(address)
}

func HTTPServerAdapterWithTimeout(timeout time.Duration) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithTimeout(timeout)
}

func HTTPServerAdapterWithHeader(key, value string) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithHeader(key, value)
}

func HTTPServerAdapterWithTLS(certFile, keyFile string) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithTLS(certFile, keyFile)
}

// HTTPServerAdapterWithEngine enables POST/GET/DELETE on /sessions.
func HTTPServerAdapterWithEngine(e httpserver.SessionEngine) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithEngine(e)
}

// HTTPServerAdapterWithObserver streams o's updates on /stream.
func HTTPServerAdapterWithObserver(o *acquisition.Observer) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithLiveUpdates(o.Updates())
}

func HTTPServerAdapterWithAnalyzer(a types.Analyzer) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithAnalyzer(a)
}

func HTTPServerAdapterWithLoader(l httpserver.CaptureLoader) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithLoader(l)
}

func HTTPServerAdapterWithSessionDefaults(duration time.Duration, saveDir string, c capture.Compression) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithSessionDefaults(duration, saveDir, c)
}

// HTTPServerAdapterWithSaveDir sets the capture directory /files lists and /analyze reads from.
func HTTPServerAdapterWithSaveDir(dir string) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithSaveDir(dir)
}

func HTTPServerAdapterWithRemoteSources(allow bool) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithRemoteSources(allow)
}

func HTTPServerAdapterWithSessionHook(fn httpserver.SessionHook) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithSessionHook(fn)
}

func HTTPServerAdapterWithLogger(l ...types.Logger) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithLogger(l...)
}

func HTTPServerAdapterWithSensor(s ...types.Sensor) types.Option[*httpserver.HTTPServerAdapter] {
	return httpserver.WithSensor(s...)
}
