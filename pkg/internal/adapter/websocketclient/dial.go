package websocketclient

import (
	"context"
	"errors"
	"net/http"

	"nhooyr.io/websocket"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Connect dials the configured URL and starts the read loop. Connecting an open transport is a
// no-op.
func (t *WebSocketTransport) Connect(ctx context.Context) error {
	t.connLock.Lock()
	defer t.connLock.Unlock()
	if t.conn != nil {
		return nil
	}

	t.configLock.Lock()
	url, hdr, limit, tlsSettings := t.url, cloneHeaders(t.headers), t.readLimit, t.tlsSettings
	t.configLock.Unlock()

	if url == "" {
		return errors.New("websocketclient: url not configured")
	}

	opts := &websocket.DialOptions{HTTPHeader: hdr}
	if tlsSettings != nil {
		tlsConf, err := buildTLSClientConfig(*tlsSettings)
		if err != nil {
			return err
		}
		opts.HTTPClient = &http.Client{Transport: &http.Transport{TLSClientConfig: tlsConf}}
	}

	conn, resp, err := websocket.Dial(ctx, url, opts)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		t.NotifyLoggers(types.ErrorLevel, "Connect: dial failed",
			"component", t.componentMetadata, "event", "dial", "result", "FAILURE", "url", url, "error", err)
		return err
	}
	if limit > 0 {
		conn.SetReadLimit(limit)
	}

	connCtx, cancel := context.WithCancel(context.Background())
	t.conn = conn
	t.connCancel = cancel
	t.readDone = make(chan struct{})
	t.drainFaults()
	setConnected(&t.connected, true)

	go t.readLoop(connCtx, conn, t.readDone)

	t.NotifyLoggers(types.InfoLevel, "Connect: dialled",
		"component", t.componentMetadata, "event", "dial", "result", "SUCCESS", "url", url)
	return nil
}

// Close ends streaming and closes the connection.
func (t *WebSocketTransport) Close() error {
	t.setOnChunk(nil)

	t.connLock.Lock()
	conn, cancel, done := t.conn, t.connCancel, t.readDone
	t.conn, t.connCancel, t.readDone = nil, nil, nil
	t.connLock.Unlock()

	if conn == nil {
		return nil
	}
	setConnected(&t.connected, false)
	err := conn.Close(websocket.StatusNormalClosure, "client shutdown")
	cancel()
	<-done

	t.NotifyLoggers(types.InfoLevel, "Close: disconnected",
		"component", t.componentMetadata, "event", "disconnect", "result", "SUCCESS")
	return err
}

func (t *WebSocketTransport) drainFaults() {
	for {
		select {
		case <-t.faults:
		default:
			return
		}
	}
}
