package acquisition_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/acquisition"
	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/sensor"
	"github.com/joeydtaylor/npulse/pkg/internal/transport"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type stubbornTransport struct {
	*transport.Simulator
}

func (s stubbornTransport) EndStreaming(ctx context.Context) error {
	_ = s.Simulator.EndStreaming(ctx)
	return errors.New("device refused stop")
}

func TestCollectTwoSecondSession(t *testing.T) {
	sim := transport.NewSimulator(transport.WithGlitchEvery(17), transport.WithSeed(9))
	var states []types.SessionState
	s := sensor.NewSensor(sensor.WithOnStateChangeFunc(func(c types.ComponentMetadata, from, to types.SessionState) {
		states = append(states, to)
	}))
	e := acquisition.NewEngine(sim, acquisition.WithSensor(s))

	records, summary, err := e.Collect(context.Background(), 2*time.Second)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if e.State() != types.SessionCompleted || summary.State != "completed" {
		t.Fatalf("unexpected state %v / %s", e.State(), summary.State)
	}
	if summary.Elapsed < 2*time.Second || summary.Elapsed > 2*time.Second+acquisition.DefaultTick+150*time.Millisecond {
		t.Fatalf("session took %v, want within one tick of 2s", summary.Elapsed)
	}
	if e.SampleCount() != sim.Delivered() || len(records) != e.SampleCount() || summary.SampleCount != len(records) {
		t.Fatalf("count mismatch: engine=%d delivered=%d records=%d summary=%d",
			e.SampleCount(), sim.Delivered(), len(records), summary.SampleCount)
	}
	if len(records) < 300 {
		t.Fatalf("expected roughly 440 records, got %d", len(records))
	}
	for _, r := range records {
		if !r.Valid() {
			t.Fatalf("glitch record collected: %v", r)
		}
	}
	if summary.Rejected == 0 {
		t.Fatalf("expected banner and glitch lines to be counted as rejected")
	}
	if tokens := sim.Tokens(); len(tokens) != 1 || tokens[0] != acquisition.DefaultStartToken {
		t.Fatalf("unexpected control tokens %v", tokens)
	}
	want := []types.SessionState{types.SessionArmed, types.SessionCollecting, types.SessionCompleted}
	if len(states) != len(want) {
		t.Fatalf("unexpected transitions %v", states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("unexpected transitions %v", states)
		}
	}
}

func TestCancelWithinOneTick(t *testing.T) {
	sim := transport.NewSimulator()
	e := acquisition.NewEngine(sim)

	type outcome struct {
		records []types.Record
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		recs, _, err := e.Collect(context.Background(), 10*time.Second)
		done <- outcome{recs, err}
	}()

	time.Sleep(300 * time.Millisecond)
	if _, _, err := e.Collect(context.Background(), time.Second); !errors.Is(err, types.ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}

	cancelledAt := time.Now()
	e.Cancel()
	select {
	case out := <-done:
		if out.err != nil {
			t.Fatalf("cancel should not be an error: %v", out.err)
		}
		if time.Since(cancelledAt) > acquisition.DefaultTick+100*time.Millisecond {
			t.Fatalf("cancel observed after %v", time.Since(cancelledAt))
		}
		if len(out.records) == 0 || len(out.records) != e.SampleCount() {
			t.Fatalf("collected samples must be retained: %d vs %d", len(out.records), e.SampleCount())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancel not observed")
	}
	if e.State() != types.SessionCancelled {
		t.Fatalf("expected cancelled, got %v", e.State())
	}
}

type staleFaultTransport struct {
	*transport.Simulator
	faults chan error
}

func (s staleFaultTransport) Faults() <-chan error { return s.faults }

func TestStaleFaultDoesNotFailNextSession(t *testing.T) {
	tr := staleFaultTransport{Simulator: transport.NewSimulator(), faults: make(chan error, 2)}
	tr.faults <- errors.New("link dropped after the last session")
	tr.faults <- errors.New("second late read error")
	e := acquisition.NewEngine(tr)

	records, summary, err := e.Collect(context.Background(), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("stale fault failed the session: %v", err)
	}
	if summary.State != "completed" || len(records) == 0 {
		t.Fatalf("expected a completed session with records, got %s with %d", summary.State, len(records))
	}

	time.AfterFunc(100*time.Millisecond, func() { tr.faults <- errors.New("live fault") })
	_, _, err = e.Collect(context.Background(), 10*time.Second)
	if !errors.Is(err, types.ErrTransportFault) {
		t.Fatalf("a fault during collection must still end the session, got %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	e := acquisition.NewEngine(transport.NewSimulator())
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, summary, err := e.Collect(ctx, 10*time.Second)
	if err != nil || summary.State != "cancelled" {
		t.Fatalf("expected cancelled without error, got %s %v", summary.State, err)
	}
}

func TestTransportFaultPreservesSamples(t *testing.T) {
	sim := transport.NewSimulator(transport.WithFaultAfter(20), transport.WithEmitInterval(5*time.Millisecond))
	var failures int32
	s := sensor.NewSensor(sensor.WithOnErrorFunc(func(types.ComponentMetadata, error) { atomic.AddInt32(&failures, 1) }))
	e := acquisition.NewEngine(sim, acquisition.WithSensor(s))

	records, summary, err := e.Collect(context.Background(), 10*time.Second)
	if !errors.Is(err, types.ErrTransportFault) {
		t.Fatalf("expected transport fault, got %v", err)
	}
	var te *types.TransportError
	if !errors.As(err, &te) || te.Op != "stream" {
		t.Fatalf("expected stream TransportError, got %#v", err)
	}
	if e.State() != types.SessionFailed || summary.Error == "" {
		t.Fatalf("expected failed state with error, got %v %q", e.State(), summary.Error)
	}
	if len(records) != e.SampleCount() {
		t.Fatalf("records %d != sample count %d", len(records), e.SampleCount())
	}
	if atomic.LoadInt32(&failures) != 1 {
		t.Fatalf("expected one error notification")
	}
}

func TestArmRequiresConnection(t *testing.T) {
	sim := transport.NewSimulator()
	sim.SetConnected(false)
	e := acquisition.NewEngine(sim)

	_, _, err := e.Collect(context.Background(), time.Second)
	if !errors.Is(err, types.ErrNotConnected) || !errors.Is(err, types.ErrTransportFault) {
		t.Fatalf("expected not-connected transport fault, got %v", err)
	}
	if e.State() != types.SessionFailed {
		t.Fatalf("expected failed, got %v", e.State())
	}
}

func TestStopFailureIsSwallowed(t *testing.T) {
	e := acquisition.NewEngine(stubbornTransport{transport.NewSimulator()}, acquisition.WithStopToken("0"))
	_, summary, err := e.Collect(context.Background(), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("stop failure must not fail the session: %v", err)
	}
	if summary.State != "completed" {
		t.Fatalf("expected completed, got %s", summary.State)
	}
}

func TestObserverDropsWhenFull(t *testing.T) {
	obs := acquisition.NewObserver(1)
	var drops int32
	s := sensor.NewSensor(sensor.WithOnObserverDropFunc(func(types.ComponentMetadata, uint64) { atomic.AddInt32(&drops, 1) }))

	var panicked int32
	e := acquisition.NewEngine(transport.NewSimulator(),
		acquisition.WithObserver(obs),
		acquisition.WithSensor(s),
		acquisition.WithRecordFunc(func(rec types.Record, count int) error {
			if count == 5 {
				atomic.AddInt32(&panicked, 1)
				panic("observer bug")
			}
			return errors.New("ignored")
		}),
	)

	records, summary, err := e.Collect(context.Background(), 400*time.Millisecond)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if obs.Dropped() == 0 || summary.Dropped != obs.Dropped() {
		t.Fatalf("expected drops, observer=%d summary=%d", obs.Dropped(), summary.Dropped)
	}
	if atomic.LoadInt32(&drops) == 0 {
		t.Fatalf("expected drop notifications")
	}
	if atomic.LoadInt32(&panicked) != 1 {
		t.Fatalf("expected the record func to panic once")
	}
	u := <-obs.Updates()
	if u.Count != 1 || u.Record != records[0] {
		t.Fatalf("first update should be the first record, got %+v", u)
	}
	obs.Close()
}

func TestSaveSession(t *testing.T) {
	dir := t.TempDir()
	e := acquisition.NewEngine(transport.NewSimulator())
	if _, err := e.Save(dir, capture.CompressNone); !errors.Is(err, types.ErrNoData) {
		t.Fatalf("expected ErrNoData before any session, got %v", err)
	}

	records, _, err := e.Collect(context.Background(), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	path, err := e.Save(dir, capture.CompressNone)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := capture.ParseText(string(data)); len(got) != len(records) {
		t.Fatalf("saved %d records, collected %d", len(got), len(records))
	}
}
