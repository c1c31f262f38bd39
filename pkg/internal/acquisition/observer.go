package acquisition

import (
	"sync"
	"sync/atomic"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Update is one live observation of an accepted record.
type Update struct {
	Record types.Record
	// Count is the session sample count after the record was appended.
	Count int
}

// Observer hands live updates to another goroutine through a bounded channel. When the channel
// is full the newest update is dropped and counted; the acquisition worker never waits on it.
type Observer struct {
	ch        chan Update
	dropped   atomic.Uint64
	closeOnce sync.Once
	closed    atomic.Bool
}

// DefaultObserverBuffer is the channel capacity used when none is given.
const DefaultObserverBuffer = 256

// NewObserver returns an observer with the given channel capacity.
func NewObserver(size int) *Observer {
	if size <= 0 {
		size = DefaultObserverBuffer
	}
	return &Observer{ch: make(chan Update, size)}
}

// Updates is the receive side for consumers.
func (o *Observer) Updates() <-chan Update { return o.ch }

// Dropped returns the number of updates discarded because the channel was full.
func (o *Observer) Dropped() uint64 { return o.dropped.Load() }

// Close ends the update stream. Offers after Close are dropped silently.
func (o *Observer) Close() {
	o.closeOnce.Do(func() {
		o.closed.Store(true)
		close(o.ch)
	})
}

// offer reports false when the update was dropped.
func (o *Observer) offer(u Update) (ok bool) {
	if o.closed.Load() {
		return true
	}
	defer func() {
		// Close raced with the send.
		if recover() != nil {
			ok = true
		}
	}()
	select {
	case o.ch <- u:
		return true
	default:
		o.dropped.Add(1)
		return false
	}
}
