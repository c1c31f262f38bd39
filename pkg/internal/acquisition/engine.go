// Package acquisition runs bounded-duration collection sessions over a device transport.
package acquisition

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/framer"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// Defaults observed on the device.
const (
	DefaultStartToken  = "1"
	DefaultTick        = 100 * time.Millisecond
	DefaultStopTimeout = 5 * time.Second
)

// RecordFunc observes each accepted record on the acquisition worker. It must return quickly;
// its errors are ignored and its panics recovered.
type RecordFunc func(rec types.Record, count int) error

// Engine owns one transport and runs at most one session on it at a time.
type Engine struct {
	componentMetadata types.ComponentMetadata
	transport         types.Transport
	framer            *framer.Framer

	startToken  string
	stopToken   string
	tick        time.Duration
	stopTimeout time.Duration
	observer    *Observer
	onRecord    RecordFunc

	// session state, written by the acquisition worker only
	mu        sync.RWMutex
	state     types.SessionState
	records   []types.Record
	summary   types.SessionSummary
	active    atomic.Bool
	cancelled atomic.Bool
	cancelCh  chan struct{}

	// chunk inbox filled by the transport callback
	inboxMu sync.Mutex
	inbox   [][]byte
	notify  chan struct{}

	sensors     []types.Sensor
	loggers     []types.Logger
	loggersLock sync.Mutex
}

var _ types.Engine = (*Engine)(nil)

// NewEngine returns an idle engine for t.
func NewEngine(t types.Transport, options ...types.Option[*Engine]) *Engine {
	e := &Engine{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ACQUISITION",
		},
		transport:   t,
		framer:      framer.NewFramer(),
		startToken:  DefaultStartToken,
		tick:        DefaultTick,
		stopTimeout: DefaultStopTimeout,
		state:       types.SessionIdle,
		cancelCh:    make(chan struct{}, 1),
		notify:      make(chan struct{}, 1),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}
