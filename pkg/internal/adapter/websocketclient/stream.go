package websocketclient

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"nhooyr.io/websocket"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

var errNotConnected = fmt.Errorf("websocketclient: %w", types.ErrNotConnected)

// SendControlToken writes token as a text message.
func (t *WebSocketTransport) SendControlToken(ctx context.Context, token string) error {
	conn := t.currentConn()
	if conn == nil {
		return errNotConnected
	}

	t.configLock.Lock()
	timeout := t.writeTimeout
	t.configLock.Unlock()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := conn.Write(ctx, websocket.MessageText, []byte(token)); err != nil {
		t.NotifyLoggers(types.ErrorLevel, "SendControlToken: write failed",
			"component", t.componentMetadata, "event", "control_token", "result", "FAILURE", "error", err)
		return err
	}
	t.NotifyLoggers(types.DebugLevel, "SendControlToken: sent",
		"component", t.componentMetadata, "event", "control_token", "result", "SUCCESS", "token", token)
	return nil
}

// BeginStreaming delivers every subsequent message payload to onChunk.
func (t *WebSocketTransport) BeginStreaming(_ context.Context, onChunk func([]byte)) error {
	if onChunk == nil {
		return errors.New("websocketclient: onChunk cannot be nil")
	}
	if t.currentConn() == nil {
		return errNotConnected
	}
	t.setOnChunk(onChunk)
	return nil
}

// EndStreaming stops delivery. Once it returns no onChunk call is running or will start.
func (t *WebSocketTransport) EndStreaming(context.Context) error {
	t.setOnChunk(nil)
	return nil
}

func (t *WebSocketTransport) setOnChunk(fn func([]byte)) {
	t.deliverLock.Lock()
	t.onChunk = fn
	t.deliverLock.Unlock()
}

func (t *WebSocketTransport) currentConn() *websocket.Conn {
	t.connLock.Lock()
	defer t.connLock.Unlock()
	return t.conn
}

// readLoop runs for the lifetime of conn. Messages arriving outside a streaming window are
// discarded.
func (t *WebSocketTransport) readLoop(ctx context.Context, conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, payload, err := conn.Read(ctx)
		if err != nil {
			t.handleReadError(ctx, err)
			return
		}
		if len(payload) == 0 {
			continue
		}
		t.deliverLock.Lock()
		if t.onChunk != nil {
			t.onChunk(payload)
		}
		t.deliverLock.Unlock()
	}
}

func (t *WebSocketTransport) handleReadError(ctx context.Context, err error) {
	setConnected(&t.connected, false)
	if ctx.Err() != nil {
		return
	}

	t.deliverLock.Lock()
	streaming := t.onChunk != nil
	t.deliverLock.Unlock()

	status := websocket.CloseStatus(err)
	if !streaming {
		t.NotifyLoggers(types.DebugLevel, "readLoop: connection closed while idle",
			"component", t.componentMetadata, "event", "read", "result", "CLOSED", "close_status", status.String())
		return
	}
	t.NotifyLoggers(types.WarnLevel, "readLoop: connection lost",
		"component", t.componentMetadata, "event", "read", "result", "FAILURE",
		"close_status", status.String(), "error", err)

	for _, s := range t.snapshotSensors() {
		s.InvokeOnError(t.componentMetadata, err)
	}
	select {
	case t.faults <- fmt.Errorf("websocket link lost: %w", err):
	default:
	}
}

func setConnected(flag *int32, v bool) {
	if v {
		atomic.StoreInt32(flag, 1)
		return
	}
	atomic.StoreInt32(flag, 0)
}
