package httpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/acquisition"
	"github.com/joeydtaylor/npulse/pkg/internal/analyzer"
	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/sensor"
	"github.com/joeydtaylor/npulse/pkg/internal/transport"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

func newTestServer(t *testing.T, opts ...types.Option[*HTTPServerAdapter]) (*HTTPServerAdapter, *httptest.Server) {
	t.Helper()
	h := NewHTTPServerAdapter(opts...)
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(srv.Close)
	return h, srv
}

func captureText(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("100,200,300\n")
	}
	return b.String()
}

func TestFilesListsCaptures(t *testing.T) {
	dir := t.TempDir()
	records := []types.Record{{C1: 1, C2: 2, C3: 3}}
	if _, err := capture.Save(dir, records, time.Now(), capture.CompressNone); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, srv := newTestServer(t, WithSessionDefaults(0, dir, capture.CompressNone))

	resp, err := http.Get(srv.URL + "/files")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var infos []capture.Info
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || len(infos) != 1 {
		t.Fatalf("unexpected response %d %v", resp.StatusCode, infos)
	}
}

func TestAnalyzeSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.txt")
	if err := os.WriteFile(path, []byte(captureText(50)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, srv := newTestServer(t,
		WithAnalyzer(analyzer.NewAnalyzer()),
		WithLoader(capture.NewLoader()),
		WithSaveDir(dir),
	)

	for _, source := range []string{"capture.txt", path} {
		resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(`{"source":"`+source+`"}`))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		var out analyzeResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || out.Result.TotalSamples != 50 || out.Result.Source != source {
			t.Fatalf("unexpected analysis of %s: %d %+v", source, resp.StatusCode, out.Result)
		}
		if !strings.Contains(out.Text, "Combined:") {
			t.Fatalf("expected summary text, got %q", out.Text)
		}
	}

	resp, err := http.Post(srv.URL+"/analyze", "text/plain", strings.NewReader(captureText(5)))
	if err != nil {
		t.Fatalf("post text: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 for raw body, got %d", resp.StatusCode)
	}
}

func TestAnalyzeMissingSourceIs404(t *testing.T) {
	var serverErrors int32
	s := sensor.NewSensor(sensor.WithOnHTTPServerErrorFunc(func(types.ComponentMetadata, error) {
		atomic.AddInt32(&serverErrors, 1)
	}))
	_, srv := newTestServer(t,
		WithAnalyzer(analyzer.NewAnalyzer()),
		WithLoader(capture.NewLoader()),
		WithSensor(s),
	)

	body := `{"source":"` + filepath.Join(t.TempDir(), "missing.txt") + `"}`
	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if atomic.LoadInt32(&serverErrors) != 1 {
		t.Fatalf("expected one server error notification")
	}

	resp, err = http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty source, got %d", resp.StatusCode)
	}
}

func TestAnalyzeOnlyReadsListedCaptures(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "files")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "kept.txt"), []byte(captureText(50)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	outside := filepath.Join(root, "outside.txt")
	if err := os.WriteFile(outside, []byte(captureText(50)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var fetched int32
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&fetched, 1)
		_, _ = w.Write([]byte(captureText(50)))
	}))
	defer remote.Close()

	_, srv := newTestServer(t,
		WithAnalyzer(analyzer.NewAnalyzer()),
		WithLoader(capture.NewLoader()),
		WithSaveDir(dir),
	)

	cases := []struct {
		source string
		status int
	}{
		{"/etc/passwd", http.StatusNotFound},
		{outside, http.StatusNotFound},
		{"../outside.txt", http.StatusNotFound},
		{filepath.Join(dir, "..", "outside.txt"), http.StatusNotFound},
		{"missing.txt", http.StatusNotFound},
		{remote.URL + "/kept.txt", http.StatusForbidden},
		{"kept.txt", http.StatusOK},
	}
	for _, tc := range cases {
		body, _ := json.Marshal(analyzeRequest{Source: tc.source})
		resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(string(body)))
		if err != nil {
			t.Fatalf("post %s: %v", tc.source, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("source %q: expected %d, got %d", tc.source, tc.status, resp.StatusCode)
		}
	}
	if atomic.LoadInt32(&fetched) != 0 {
		t.Fatalf("remote source fetched while remote sources are disabled")
	}
}

func TestSessionLifecycleAndStream(t *testing.T) {
	dir := t.TempDir()
	observer := acquisition.NewObserver(1024)
	engine := acquisition.NewEngine(transport.NewSimulator(), acquisition.WithObserver(observer))
	hooked := make(chan types.SessionSummary, 1)

	h, srv := newTestServer(t,
		WithEngine(engine),
		WithLiveUpdates(observer.Updates()),
		WithAnalyzer(analyzer.NewAnalyzer()),
		WithSessionDefaults(time.Second, dir, capture.CompressGzip),
		WithSessionHook(func(_ context.Context, _ []types.Record, summary types.SessionSummary, _ types.AnalysisResult) {
			hooked <- summary
		}),
	)
	t.Cleanup(observer.Close)

	stream, err := http.Get(srv.URL + "/stream")
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer stream.Body.Close()
	deadline := time.Now().Add(time.Second)
	for h.hub.subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Post(srv.URL+"/sessions?duration=500ms", "", nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/sessions", "", nil)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 while running, got %d", resp.StatusCode)
	}

	sc := bufio.NewScanner(stream.Body)
	sawRecord := false
	for sc.Scan() {
		if sc.Text() == "event: record" {
			sawRecord = true
			break
		}
	}
	if !sawRecord {
		t.Fatalf("expected a record event on the stream")
	}

	var summary types.SessionSummary
	select {
	case summary = <-hooked:
	case <-time.After(3 * time.Second):
		t.Fatal("session hook did not run")
	}
	if summary.State != "completed" || summary.SampleCount == 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	resp, err = http.Get(srv.URL + "/sessions/current")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var status sessionStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	resp.Body.Close()
	if status.State != "completed" || status.Last == nil || status.Last.Result == nil {
		t.Fatalf("unexpected status %+v", status)
	}
	if !strings.HasSuffix(status.Last.Capture, ".txt.gz") {
		t.Fatalf("expected gzip capture, got %q", status.Last.Capture)
	}
}

func TestCancelSession(t *testing.T) {
	engine := acquisition.NewEngine(transport.NewSimulator())
	h, srv := newTestServer(t,
		WithEngine(engine),
		WithSessionDefaults(time.Minute, t.TempDir(), capture.CompressNone),
	)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/current", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("cancel idle: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 with no session, got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/sessions", "", nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	resp.Body.Close()
	time.Sleep(200 * time.Millisecond)

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}

	deadline := time.Now().Add(2 * time.Second)
	for h.Running() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if h.Running() || engine.State() != types.SessionCancelled {
		t.Fatalf("expected cancelled session, state=%v running=%v", engine.State(), h.Running())
	}
}

func TestNotConfigured(t *testing.T) {
	_, srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/sessions", "", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", resp.StatusCode)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	h := NewHTTPServerAdapter(WithAddress("127.0.0.1:0"))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Serve(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(6 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestWithTLSMissingFiles(t *testing.T) {
	h := NewHTTPServerAdapter(WithTLS("missing.crt", "missing.key"))
	if err := h.Serve(context.Background()); err == nil || errors.Is(err, context.Canceled) {
		t.Fatalf("expected key pair error, got %v", err)
	}
}
