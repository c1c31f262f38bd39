package httpserver

import (
	"sync"
	"sync/atomic"

	"github.com/joeydtaylor/npulse/pkg/internal/acquisition"
)

// hub fans live updates out to stream subscribers. A slow subscriber loses updates; the pump
// never waits on it.
type hub struct {
	size    int
	mu      sync.Mutex
	subs    map[chan acquisition.Update]struct{}
	closed  bool
	dropped atomic.Uint64
}

func newHub(size int) *hub {
	if size <= 0 {
		size = 64
	}
	return &hub{size: size, subs: make(map[chan acquisition.Update]struct{})}
}

func (b *hub) subscribe() chan acquisition.Update {
	ch := make(chan acquisition.Update, b.size)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	return ch
}

func (b *hub) unsubscribe(ch chan acquisition.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

func (b *hub) publish(u acquisition.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- u:
		default:
			b.dropped.Add(1)
		}
	}
}

func (b *hub) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

func (b *hub) subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// pump forwards updates until the source closes.
func (b *hub) pump(updates <-chan acquisition.Update) {
	defer b.close()
	for u := range updates {
		b.publish(u)
	}
}
