package httpclient

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithHeader adds a static header to outgoing requests.
func WithHeader(key, value string) types.Option[*HTTPClientAdapter] {
	return func(hp *HTTPClientAdapter) { _ = hp.AddHeader(key, value) }
}

// WithBasicAuth sets basic authentication credentials.
func WithBasicAuth(username, password string) types.Option[*HTTPClientAdapter] {
	return func(hp *HTTPClientAdapter) { _ = hp.SetBasicAuth(username, password) }
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) types.Option[*HTTPClientAdapter] {
	return func(hp *HTTPClientAdapter) {
		if timeout > 0 {
			hp.timeout = timeout
			hp.httpClient.Timeout = timeout
		}
	}
}

// WithMaxRetries sets how many times a failed request is retried, and the pause between attempts.
func WithMaxRetries(maxRetries int, delay time.Duration) types.Option[*HTTPClientAdapter] {
	return func(hp *HTTPClientAdapter) {
		hp.maxRetries = maxRetries
		if delay >= 0 {
			hp.retryDelay = delay
		}
	}
}

// WithTLSPinnedCertificate pins the server certificate.
func WithTLSPinnedCertificate(certPath string) types.Option[*HTTPClientAdapter] {
	return func(hp *HTTPClientAdapter) { _ = hp.SetTLSPinnedCertificate(certPath) }
}

// WithLogger attaches loggers to the adapter.
func WithLogger(l ...types.Logger) types.Option[*HTTPClientAdapter] {
	return func(hp *HTTPClientAdapter) { hp.ConnectLogger(l...) }
}

// WithSensor attaches sensors to the adapter.
func WithSensor(s ...types.Sensor) types.Option[*HTTPClientAdapter] {
	return func(hp *HTTPClientAdapter) { hp.ConnectSensor(s...) }
}
