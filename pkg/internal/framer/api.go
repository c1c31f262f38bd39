package framer

import (
	"bytes"
	"context"
	"iter"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Write appends chunk to the pending buffer and returns every record completed by it, in order.
// A chunk without a newline only grows the buffer.
func (f *Framer) Write(chunk []byte) []types.Record {
	if len(chunk) == 0 {
		return nil
	}

	f.mu.Lock()
	f.pending = append(f.pending, chunk...)
	var lines []string
	for {
		idx := bytes.IndexByte(f.pending, '\n')
		if idx < 0 {
			break
		}
		lines = append(lines, string(f.pending[:idx]))
		f.pending = f.pending[idx+1:]
	}
	if len(f.pending) == 0 {
		f.pending = nil
	}
	f.mu.Unlock()

	if len(lines) == 0 {
		return nil
	}

	records := make([]types.Record, 0, len(lines))
	for _, line := range lines {
		rec, reason, ok := ParseLine(line)
		f.countLine(reason, ok)
		switch {
		case ok:
			records = append(records, rec)
			f.notifyRecord(rec)
		case reason != "":
			f.notifyReject(line, reason)
		}
	}
	return records
}

// Flush ends the stream. The pending partial line is discarded, never parsed, and its
// length is returned.
func (f *Framer) Flush() int {
	f.mu.Lock()
	dropped := len(f.pending)
	f.pending = nil
	f.mu.Unlock()

	if dropped > 0 {
		f.NotifyLoggers(types.DebugLevel, "Flush: dropped trailing partial line",
			"component", f.componentMetadata, "event", "flush", "result", "DROPPED", "bytes", dropped)
	}
	return dropped
}

// Records frames chunks from the channel lazily. The sequence ends when the channel closes
// (after a Flush), when ctx is done, or when the consumer stops iterating.
func (f *Framer) Records(ctx context.Context, chunks <-chan []byte) iter.Seq[types.Record] {
	return func(yield func(types.Record) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			case chunk, ok := <-chunks:
				if !ok {
					f.Flush()
					return
				}
				for _, rec := range f.Write(chunk) {
					if !yield(rec) {
						return
					}
				}
			}
		}
	}
}

func (f *Framer) countLine(reason string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ok {
		f.lines++
		f.accepted++
		return
	}
	if reason != "" {
		f.lines++
		f.rejected++
	}
}
