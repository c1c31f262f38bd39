package kafkaclient

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/npulse/pkg/internal/circuitbreaker"
	"github.com/joeydtaylor/npulse/pkg/internal/sensor"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type fakeWriter struct {
	written [][]kafka.Message
	err     error
	closed  bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublishWritesBatch(t *testing.T) {
	fw := &fakeWriter{}
	var sizes []int
	s := sensor.NewSensor(sensor.WithOnPublishSuccessFunc(func(c types.ComponentMetadata, topic string, n int, d time.Duration) {
		sizes = append(sizes, n)
	}))
	a := NewKafkaClientAdapter(WithSensor(s))
	a.writer = fw
	a.topic = "npulse.results"

	err := a.Publish(context.Background(),
		types.PublishMessage{Key: []byte("k1"), Value: []byte("v1"), Headers: map[string]string{"kind": "analysis"}},
		types.PublishMessage{Key: []byte("k2"), Value: []byte("value2")},
	)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(fw.written) != 1 || len(fw.written[0]) != 2 {
		t.Fatalf("expected one batch of 2, got %v", fw.written)
	}
	if h := fw.written[0][0].Headers; len(h) != 1 || h[0].Key != "kind" || string(h[0].Value) != "analysis" {
		t.Fatalf("unexpected headers %v", h)
	}
	if len(sizes) != 1 || sizes[0] != 12 {
		t.Fatalf("unexpected publish sizes %v", sizes)
	}

	if err := a.Close(); err != nil || !fw.closed {
		t.Fatalf("expected writer closed")
	}
}

func TestPublishTripsBreaker(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker unavailable")}
	cb := circuitbreaker.NewCircuitBreaker(context.Background(), 2, time.Minute)
	var publishErrs int
	s := sensor.NewSensor(sensor.WithOnPublishErrorFunc(func(types.ComponentMetadata, string, error) { publishErrs++ }))
	a := NewKafkaClientAdapter(WithCircuitBreaker(cb), WithSensor(s))
	a.writer = fw

	msg := types.PublishMessage{Value: []byte("x")}
	for i := 0; i < 2; i++ {
		if err := a.Publish(context.Background(), msg); err == nil {
			t.Fatalf("attempt %d: expected error", i)
		}
	}
	if err := a.Publish(context.Background(), msg); !errors.Is(err, types.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if publishErrs != 2 {
		t.Fatalf("expected 2 publish errors, got %d", publishErrs)
	}
}

func TestPublishWithoutWriter(t *testing.T) {
	a := NewKafkaClientAdapter()
	if err := a.Publish(context.Background(), types.PublishMessage{Value: []byte("x")}); err == nil {
		t.Fatal("expected error without writer")
	}
	if err := a.Publish(context.Background()); err != nil {
		t.Fatalf("empty publish should be a no-op, got %v", err)
	}
}

func TestNewWriterOptions(t *testing.T) {
	w := NewWriter([]string{"localhost:9092"}, "topic-a", WriterWithRequiredAcks("leader"), WriterWithCompression("zstd"))
	if w.Topic != "topic-a" || w.RequiredAcks != kafka.RequireOne || w.Compression != kafka.Zstd {
		t.Fatalf("unexpected writer %+v", w)
	}
	a := NewKafkaClientAdapter(WithWriter(w))
	if a.Topic() != "topic-a" {
		t.Fatalf("expected topic from writer, got %q", a.Topic())
	}
}

func TestMessages(t *testing.T) {
	res := types.AnalysisResult{Source: "files/a.txt", TotalSamples: 10}
	m, err := AnalysisMessage(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(m.Key) != "files/a.txt" || m.Headers["kind"] != KindAnalysis {
		t.Fatalf("unexpected analysis message %+v", m)
	}
	var decoded types.AnalysisResult
	if err := json.Unmarshal(m.Value, &decoded); err != nil || decoded.TotalSamples != 10 {
		t.Fatalf("decode mismatch: %v %+v", err, decoded)
	}

	sm, err := SessionMessage(types.SessionSummary{ID: "s1", State: "completed"})
	if err != nil || string(sm.Key) != "s1" || sm.Headers["state"] != "completed" {
		t.Fatalf("unexpected session message %+v %v", sm, err)
	}
}
