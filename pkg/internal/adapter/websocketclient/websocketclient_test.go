package websocketclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"github.com/joeydtaylor/npulse/pkg/internal/framer"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

func wsTestURL(serverURL string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http")
}

// deviceServer answers the start token with chunks, then waits for the stop token.
func deviceServer(t *testing.T, chunks []string, tokens chan<- string, dropAfterChunks bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		ctx := context.Background()
		_, tok, err := conn.Read(ctx)
		if err != nil {
			return
		}
		tokens <- string(tok)
		for _, c := range chunks {
			if err := conn.Write(ctx, websocket.MessageText, []byte(c)); err != nil {
				return
			}
		}
		if dropAfterChunks {
			_ = conn.Close(websocket.StatusInternalError, "device unplugged")
			return
		}
		_, tok, err = conn.Read(ctx)
		if err == nil {
			tokens <- string(tok)
		}
		_ = conn.Close(websocket.StatusNormalClosure, "done")
	}))
}

func TestStreamingDeliversChunks(t *testing.T) {
	tokens := make(chan string, 2)
	ts := deviceServer(t, []string{"100,150,2", "00\n50,60,0\n110,140,190\n"}, tokens, false)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tr := NewWebSocketTransport(WithURL(wsTestURL(ts.URL)), WithHeader("X-Device", "npulse"))
	if tr.IsConnected() {
		t.Fatal("expected disconnected before Connect")
	}
	if err := tr.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer tr.Close()
	if !tr.IsConnected() {
		t.Fatal("expected connected")
	}

	var mu sync.Mutex
	got := make(chan struct{})
	var received []byte
	if err := tr.BeginStreaming(ctx, func(b []byte) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, b...)
		if strings.Count(string(received), "\n") == 3 {
			close(got)
		}
	}); err != nil {
		t.Fatalf("BeginStreaming: %v", err)
	}
	if err := tr.SendControlToken(ctx, "1"); err != nil {
		t.Fatalf("SendControlToken: %v", err)
	}
	if tok := <-tokens; tok != "1" {
		t.Fatalf("expected start token, got %q", tok)
	}

	select {
	case <-got:
	case <-ctx.Done():
		t.Fatal("timed out waiting for chunks")
	}
	if err := tr.SendControlToken(ctx, "0"); err != nil {
		t.Fatalf("stop token: %v", err)
	}
	if err := tr.EndStreaming(ctx); err != nil {
		t.Fatalf("EndStreaming: %v", err)
	}
	if tok := <-tokens; tok != "0" {
		t.Fatalf("expected stop token, got %q", tok)
	}

	f := framer.NewFramer()
	mu.Lock()
	records := f.Write(received)
	mu.Unlock()
	want := []types.Record{{C1: 100, C2: 150, C3: 200}, {C1: 110, C2: 140, C3: 190}}
	if len(records) != 2 || records[0] != want[0] || records[1] != want[1] {
		t.Fatalf("got %v, want %v", records, want)
	}
}

func TestLinkLossRaisesFault(t *testing.T) {
	tokens := make(chan string, 2)
	ts := deviceServer(t, []string{"1,2,3\n"}, tokens, true)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tr := NewWebSocketTransport(WithURL(wsTestURL(ts.URL)))
	if err := tr.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer tr.Close()

	if err := tr.BeginStreaming(ctx, func([]byte) {}); err != nil {
		t.Fatal(err)
	}
	if err := tr.SendControlToken(ctx, "1"); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-tr.Faults():
		if err == nil {
			t.Fatal("expected non-nil fault")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for fault")
	}
	if tr.IsConnected() {
		t.Fatal("expected disconnected after link loss")
	}
}

func TestNotConnected(t *testing.T) {
	tr := NewWebSocketTransport()
	if err := tr.SendControlToken(context.Background(), "1"); !errors.Is(err, types.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if err := tr.BeginStreaming(context.Background(), func([]byte) {}); !errors.Is(err, types.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if err := tr.Connect(context.Background()); err == nil {
		t.Fatal("expected error without url")
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close on unconnected transport: %v", err)
	}
}

func TestTLSSettingsRequireKeyPair(t *testing.T) {
	if _, err := buildTLSClientConfig(TLSSettings{CertFile: "cert.pem"}); err == nil {
		t.Fatal("expected error for cert without key")
	}
	conf, err := buildTLSClientConfig(TLSSettings{ServerName: "device.local"})
	if err != nil || conf.ServerName != "device.local" {
		t.Fatalf("unexpected config %+v %v", conf, err)
	}
}
