// Package httpserver exposes capture listing, analysis and live sessions over HTTP.
package httpserver

import (
	"context"
	"crypto/tls"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/acquisition"
	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// SessionEngine is the acquisition surface the server drives.
type SessionEngine interface {
	types.Engine
	Save(dir string, c capture.Compression) (string, error)
}

// CaptureLoader resolves analysis sources.
type CaptureLoader interface {
	Load(ctx context.Context, source string) ([]types.Record, error)
}

// SessionHook runs after a session finished and was analysed.
type SessionHook func(ctx context.Context, records []types.Record, summary types.SessionSummary, result types.AnalysisResult)

const (
	defaultAddress = ":8080"
	defaultTimeout = 30 * time.Second
	defaultMaxBody = 1 << 20
)

type HTTPServerAdapter struct {
	componentMetadata types.ComponentMetadata

	address   string
	timeout   time.Duration
	maxBody   int64
	headers   map[string]string
	tlsConfig *tls.Config
	configErr error

	engine   SessionEngine
	analyzer types.Analyzer
	loader   CaptureLoader
	updates  <-chan acquisition.Update
	hooks    []SessionHook

	remoteSources bool

	saveDir         string
	compression     capture.Compression
	sessionDuration time.Duration

	hub      *hub
	pumpOnce sync.Once

	running atomic.Bool
	baseCtx context.Context

	lastLock sync.RWMutex
	last     *sessionOutcome

	serverLock sync.Mutex

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

type sessionOutcome struct {
	Summary types.SessionSummary  `json:"summary"`
	Result  *types.AnalysisResult `json:"result,omitempty"`
	Capture string                `json:"capture,omitempty"`
	Text    string                `json:"text,omitempty"`
}

// NewHTTPServerAdapter returns a server listening on :8080 unless configured otherwise.
func NewHTTPServerAdapter(options ...types.Option[*HTTPServerAdapter]) *HTTPServerAdapter {
	h := &HTTPServerAdapter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "HTTP_SERVER",
		},
		address:         defaultAddress,
		timeout:         defaultTimeout,
		maxBody:         defaultMaxBody,
		headers:         make(map[string]string),
		saveDir:         capture.DefaultDir,
		sessionDuration: 60 * time.Second,
		hub:             newHub(64),
		baseCtx:         context.Background(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

func (h *HTTPServerAdapter) GetComponentMetadata() types.ComponentMetadata {
	return h.componentMetadata
}

func (h *HTTPServerAdapter) SetComponentMetadata(name string, id string) {
	h.componentMetadata.Name = name
	h.componentMetadata.ID = id
}

func (h *HTTPServerAdapter) ConnectLogger(loggers ...types.Logger) {
	h.loggersLock.Lock()
	defer h.loggersLock.Unlock()
	h.loggers = append(h.loggers, loggers...)
}

func (h *HTTPServerAdapter) ConnectSensor(sensors ...types.Sensor) {
	h.sensorsLock.Lock()
	defer h.sensorsLock.Unlock()
	h.sensors = append(h.sensors, sensors...)
}

// Running reports whether a session started through the API is in flight.
func (h *HTTPServerAdapter) Running() bool {
	return h.running.Load()
}
