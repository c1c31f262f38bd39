package acquisition

import (
	"context"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

type session struct {
	id       string
	duration time.Duration
	started  time.Time
}

// Collect arms the engine, streams for duration and blocks until the session ends by deadline,
// Cancel, ctx cancellation or a transport fault. The collected records are returned in every
// case; err is a *types.TransportError for faults and types.ErrSessionActive when a session is
// already running.
func (e *Engine) Collect(ctx context.Context, duration time.Duration) ([]types.Record, types.SessionSummary, error) {
	if !e.active.CompareAndSwap(false, true) {
		return nil, types.SessionSummary{}, types.ErrSessionActive
	}
	defer e.active.Store(false)
	if ctx == nil {
		ctx = context.Background()
	}

	s := &session{id: utils.GenerateUniqueHash(), duration: duration, started: time.Now()}
	e.reset()
	e.transition(types.SessionArmed)
	e.notifyStart(s)

	if !e.transport.IsConnected() {
		return e.finish(s, types.SessionFailed, types.NewTransportError("arm", types.ErrNotConnected))
	}
	if err := e.transport.SendControlToken(ctx, e.startToken); err != nil {
		return e.finish(s, types.SessionFailed, types.NewTransportError("send_control_token", err))
	}
	if err := e.transport.BeginStreaming(ctx, e.enqueue); err != nil {
		return e.finish(s, types.SessionFailed, types.NewTransportError("begin_streaming", err))
	}

	s.started = time.Now()
	e.transition(types.SessionCollecting)
	state, err := e.collect(ctx, s)

	e.stopStreaming()
	e.drain()
	return e.finish(s, state, err)
}

// Cancel requests cancellation of the active session. It is observed within one tick and is a
// no-op when no session is running.
func (e *Engine) Cancel() {
	if !e.active.Load() {
		return
	}
	e.cancelled.Store(true)
	select {
	case e.cancelCh <- struct{}{}:
	default:
	}
}

// Save writes the most recent session to dir as a timestamped capture.
func (e *Engine) Save(dir string, c capture.Compression) (string, error) {
	if e.active.Load() {
		return "", types.ErrSessionActive
	}
	return capture.Save(dir, e.Snapshot(), time.Now(), c)
}

func (e *Engine) collect(ctx context.Context, s *session) (types.SessionState, error) {
	deadline := s.started.Add(s.duration)
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	var faults <-chan error
	if fn, ok := e.transport.(types.TransportFaultNotifier); ok {
		faults = fn.Faults()
	}

	for {
		if e.cancelled.Load() {
			return types.SessionCancelled, nil
		}
		select {
		case <-e.notify:
			e.drain()
		case err, ok := <-faults:
			if !ok {
				faults = nil
				continue
			}
			if err != nil {
				return types.SessionFailed, types.NewTransportError("stream", err)
			}
		case <-ctx.Done():
			return types.SessionCancelled, nil
		case <-e.cancelCh:
			return types.SessionCancelled, nil
		case now := <-ticker.C:
			if !now.Before(deadline) {
				return types.SessionCompleted, nil
			}
		}
	}
}

// stopStreaming ends delivery. Failures are logged and swallowed.
func (e *Engine) stopStreaming() {
	ctx, cancel := context.WithTimeout(context.Background(), e.stopTimeout)
	defer cancel()

	if e.stopToken != "" {
		if err := e.transport.SendControlToken(ctx, e.stopToken); err != nil {
			e.NotifyLoggers(types.WarnLevel, "Collect: stop token failed",
				"component", e.componentMetadata, "event", "stop", "result", "FAILURE", "error", err)
		}
	}
	if err := e.transport.EndStreaming(ctx); err != nil {
		e.NotifyLoggers(types.WarnLevel, "Collect: end streaming failed",
			"component", e.componentMetadata, "event", "stop", "result", "FAILURE", "error", err)
	}
}

// enqueue is the transport callback. It never blocks on the worker.
func (e *Engine) enqueue(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	c := append([]byte(nil), chunk...)
	e.inboxMu.Lock()
	e.inbox = append(e.inbox, c)
	e.inboxMu.Unlock()

	select {
	case e.notify <- struct{}{}:
	default:
	}
}

// drain frames every queued chunk and appends the records in order.
func (e *Engine) drain() {
	e.inboxMu.Lock()
	chunks := e.inbox
	e.inbox = nil
	e.inboxMu.Unlock()

	for _, chunk := range chunks {
		recs := e.framer.Write(chunk)
		if len(recs) == 0 {
			continue
		}
		e.mu.Lock()
		base := len(e.records)
		e.records = append(e.records, recs...)
		e.mu.Unlock()

		for i, rec := range recs {
			e.observe(rec, base+i+1)
		}
	}
}

func (e *Engine) observe(rec types.Record, count int) {
	if e.observer != nil && !e.observer.offer(Update{Record: rec, Count: count}) {
		e.notifyObserverDrop(e.observer.Dropped())
	}
	if e.onRecord != nil {
		e.callRecordFunc(rec, count)
	}
}

func (e *Engine) callRecordFunc(rec types.Record, count int) {
	defer func() {
		if r := recover(); r != nil {
			e.NotifyLoggers(types.WarnLevel, "Collect: record observer panicked",
				"component", e.componentMetadata, "event", "observe", "result", "RECOVERED", "panic", r)
		}
	}()
	_ = e.onRecord(rec, count)
}

func (e *Engine) reset() {
	e.mu.Lock()
	e.records = nil
	e.summary = types.SessionSummary{}
	e.mu.Unlock()

	e.framer.Reset()
	e.cancelled.Store(false)
	select {
	case <-e.cancelCh:
	default:
	}

	e.inboxMu.Lock()
	e.inbox = nil
	e.inboxMu.Unlock()
	select {
	case <-e.notify:
	default:
	}
	e.drainFaults()
}

// drainFaults discards faults left over from a previous session so they cannot fail this one.
func (e *Engine) drainFaults() {
	fn, ok := e.transport.(types.TransportFaultNotifier)
	if !ok {
		return
	}
	faults := fn.Faults()
	for {
		select {
		case err, open := <-faults:
			if !open {
				return
			}
			e.NotifyLoggers(types.DebugLevel, "Collect: discarded stale fault",
				"component", e.componentMetadata, "event", "arm", "result", "DISCARDED", "error", err)
		default:
			return
		}
	}
}

func (e *Engine) transition(to types.SessionState) {
	e.mu.Lock()
	from := e.state
	e.state = to
	e.mu.Unlock()
	e.notifyStateChange(from, to)
}

func (e *Engine) finish(s *session, state types.SessionState, err error) ([]types.Record, types.SessionSummary, error) {
	_, _, rejected := e.framer.Stats()
	var dropped uint64
	if e.observer != nil {
		dropped = e.observer.Dropped()
	}
	now := time.Now()

	e.mu.Lock()
	summary := types.SessionSummary{
		ID:          s.id,
		State:       state.String(),
		Duration:    s.duration,
		Elapsed:     now.Sub(s.started),
		SampleCount: len(e.records),
		Rejected:    int(rejected),
		Dropped:     dropped,
		StartedAt:   s.started,
		EndedAt:     now,
	}
	if err != nil {
		summary.Error = err.Error()
	}
	e.summary = summary
	records := append([]types.Record(nil), e.records...)
	e.mu.Unlock()

	e.transition(state)
	e.notifyTerminal(state, summary, err)
	return records, summary, err
}
