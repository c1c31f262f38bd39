// Package transport holds the worker bridge that serialises calls into a device transport and a
// simulated PPG transport for demos and tests.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// DefaultCallTimeout bounds every call handed to the bridge worker.
const DefaultCallTimeout = 120 * time.Second

// ErrBridgeClosed is returned for calls made after Close.
var ErrBridgeClosed = errors.New("transport bridge closed")

type call struct {
	ctx   context.Context
	op    string
	fn    func(context.Context) error
	reply chan error
}

// Bridge owns a transport on a dedicated goroutine. Every method is a message to that goroutine
// and fails with types.ErrTransportTimeout if no reply arrives within the call timeout.
type Bridge struct {
	componentMetadata types.ComponentMetadata
	transport         types.Transport
	timeout           time.Duration

	calls     chan call
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewBridge starts the worker for t.
func NewBridge(t types.Transport, options ...types.Option[*Bridge]) *Bridge {
	b := &Bridge{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "TRANSPORT_BRIDGE",
		},
		transport: t,
		timeout:   DefaultCallTimeout,
		calls:     make(chan call),
		done:      make(chan struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}

	b.wg.Add(1)
	go b.run()
	return b
}

func (b *Bridge) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return
		case c := <-b.calls:
			c.reply <- c.fn(c.ctx)
		}
	}
}

func (b *Bridge) do(ctx context.Context, op string, fn func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	c := call{ctx: ctx, op: op, fn: fn, reply: make(chan error, 1)}
	select {
	case b.calls <- c:
	case <-b.done:
		return ErrBridgeClosed
	case <-ctx.Done():
		return b.callFailed(op, ctx.Err())
	}

	select {
	case err := <-c.reply:
		return err
	case <-b.done:
		return ErrBridgeClosed
	case <-ctx.Done():
		return b.callFailed(op, ctx.Err())
	}
}

func (b *Bridge) callFailed(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%s after %s: %w", op, b.timeout, types.ErrTransportTimeout)
	}
	b.NotifyLoggers(types.WarnLevel, "Bridge: call failed",
		"component", b.componentMetadata, "event", op, "result", "FAILURE", "error", err)
	return err
}

// IsConnected asks the worker for the link state. A failed call reports false.
func (b *Bridge) IsConnected() bool {
	var connected bool
	err := b.do(context.Background(), "is_connected", func(context.Context) error {
		connected = b.transport.IsConnected()
		return nil
	})
	return err == nil && connected
}

// SendControlToken forwards a control token through the worker.
func (b *Bridge) SendControlToken(ctx context.Context, token string) error {
	return b.do(ctx, "send_control_token", func(ctx context.Context) error {
		return b.transport.SendControlToken(ctx, token)
	})
}

// BeginStreaming starts delivery through the worker. onChunk runs on the transport's goroutine.
func (b *Bridge) BeginStreaming(ctx context.Context, onChunk func([]byte)) error {
	return b.do(ctx, "begin_streaming", func(ctx context.Context) error {
		return b.transport.BeginStreaming(ctx, onChunk)
	})
}

// EndStreaming stops delivery through the worker.
func (b *Bridge) EndStreaming(ctx context.Context) error {
	return b.do(ctx, "end_streaming", func(ctx context.Context) error {
		return b.transport.EndStreaming(ctx)
	})
}

// Faults exposes the wrapped transport's fault channel, or nil.
func (b *Bridge) Faults() <-chan error {
	if fn, ok := b.transport.(types.TransportFaultNotifier); ok {
		return fn.Faults()
	}
	return nil
}

// Close stops the worker. Calls in flight return ErrBridgeClosed.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
		b.wg.Wait()
	})
}

// GetComponentMetadata returns the bridge metadata.
func (b *Bridge) GetComponentMetadata() types.ComponentMetadata { return b.componentMetadata }

// ConnectLogger attaches loggers.
func (b *Bridge) ConnectLogger(loggers ...types.Logger) {
	b.loggersLock.Lock()
	defer b.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			b.loggers = append(b.loggers, l)
		}
	}
}

// NotifyLoggers emits a log entry to all configured loggers.
func (b *Bridge) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	b.loggersLock.Lock()
	loggers := append([]types.Logger(nil), b.loggers...)
	b.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}
