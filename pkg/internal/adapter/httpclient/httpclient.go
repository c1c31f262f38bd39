// Package httpclient fetches remote captures over HTTP(S).
package httpclient

import (
	"net/http"
	"sync"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// HTTPClientAdapter downloads capture bodies. HTML responses are reduced to their text content so
// captures shared as web pages parse like plain files.
type HTTPClientAdapter struct {
	componentMetadata types.ComponentMetadata
	configLock        sync.Mutex
	httpClient        *http.Client
	headers           map[string]string
	maxRetries        int
	retryDelay        time.Duration
	timeout           time.Duration
	pinEnabled        bool
	pinnedCert        []byte

	sensors     []types.Sensor
	sensorLock  sync.Mutex
	loggers     []types.Logger
	loggersLock sync.Mutex
}

var _ types.HTTPClientAdapter = (*HTTPClientAdapter)(nil)

// NewHTTPClientAdapter returns an adapter with a 30 s timeout and no retries.
func NewHTTPClientAdapter(options ...types.Option[*HTTPClientAdapter]) *HTTPClientAdapter {
	hp := &HTTPClientAdapter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "HTTP_CLIENT",
		},
		headers:    make(map[string]string),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		timeout:    30 * time.Second,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(hp)
	}
	return hp
}

// GetComponentMetadata returns the adapter metadata.
func (hp *HTTPClientAdapter) GetComponentMetadata() types.ComponentMetadata {
	return hp.componentMetadata
}

// ConnectLogger attaches loggers.
func (hp *HTTPClientAdapter) ConnectLogger(loggers ...types.Logger) {
	hp.loggersLock.Lock()
	defer hp.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			hp.loggers = append(hp.loggers, l)
		}
	}
}

// ConnectSensor attaches sensors.
func (hp *HTTPClientAdapter) ConnectSensor(sensors ...types.Sensor) {
	hp.sensorLock.Lock()
	defer hp.sensorLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			hp.sensors = append(hp.sensors, s)
		}
	}
}
