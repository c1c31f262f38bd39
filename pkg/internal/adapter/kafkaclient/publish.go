package kafkaclient

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

var errNoWriter = errors.New("kafkaclient: no writer configured")

// Publish writes msgs as one batch. When a circuit breaker is connected and open, nothing is
// written and types.ErrCircuitOpen is returned; failures are recorded against the breaker.
func (a *KafkaClientAdapter) Publish(ctx context.Context, msgs ...types.PublishMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	if a.writer == nil {
		return errNoWriter
	}

	a.cbLock.Lock()
	cb := a.cb
	a.cbLock.Unlock()
	if cb != nil && !cb.Allow() {
		a.NotifyLoggers(types.WarnLevel, "Publish: dropped, circuit open",
			"component", a.componentMetadata, "event", "publish", "result", "DROPPED",
			"topic", a.topic, "messages", len(msgs))
		return types.ErrCircuitOpen
	}

	out := make([]kafka.Message, 0, len(msgs))
	size := 0
	for _, m := range msgs {
		km := kafka.Message{Key: m.Key, Value: m.Value}
		for k, v := range m.Headers {
			km.Headers = append(km.Headers, kafka.Header{Key: k, Value: []byte(v)})
		}
		size += len(m.Key) + len(m.Value)
		out = append(out, km)
	}

	start := time.Now()
	err := a.writer.WriteMessages(ctx, out...)
	dur := time.Since(start)
	if err != nil {
		if cb != nil {
			cb.RecordError()
		}
		for _, s := range a.snapshotSensors() {
			s.InvokeOnPublishError(a.componentMetadata, a.topic, err)
		}
		a.NotifyLoggers(types.ErrorLevel, "Publish: failed",
			"component", a.componentMetadata, "event", "publish", "result", "FAILURE",
			"topic", a.topic, "messages", len(msgs), "error", err)
		return err
	}

	if cb != nil {
		cb.RecordSuccess()
	}
	for _, s := range a.snapshotSensors() {
		s.InvokeOnPublishSuccess(a.componentMetadata, a.topic, size, dur)
	}
	a.NotifyLoggers(types.DebugLevel, "Publish: complete",
		"component", a.componentMetadata, "event", "publish", "result", "SUCCESS",
		"topic", a.topic, "messages", len(msgs), "bytes", size, "duration", dur)
	return nil
}
