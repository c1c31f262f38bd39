package transport

import (
	"bytes"
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// DefaultBanner is the line a device prints when streaming starts.
const DefaultBanner = "Start nPULSE001"

// ErrAlreadyStreaming is returned by BeginStreaming while a stream is active.
var ErrAlreadyStreaming = errors.New("simulator already streaming")

// Simulator is an in-process transport that emits a synthetic three-channel PPG waveform as
// record text, cut into chunks at random byte boundaries. Partial lines carry over between
// deliveries the way a radio link splits notifications.
type Simulator struct {
	componentMetadata types.ComponentMetadata

	rate        float64 // samples per second
	bpm         float64
	breaths     float64
	interval    time.Duration
	glitchEvery int
	banner      string
	seed        int64
	faultAfter  int

	mu        sync.Mutex
	connected bool
	streaming bool
	tokens    []string
	delivered int
	chunks    int
	stop      chan struct{}
	wg        sync.WaitGroup
	faults    chan error
}

var (
	_ types.Transport              = (*Simulator)(nil)
	_ types.TransportFaultNotifier = (*Simulator)(nil)
	_ types.Transport              = (*Bridge)(nil)
)

// NewSimulator returns a connected simulator producing 72 bpm at 220 samples/s.
func NewSimulator(options ...types.Option[*Simulator]) *Simulator {
	s := &Simulator{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SIMULATOR",
		},
		rate:      220,
		bpm:       72,
		breaths:   15,
		interval:  20 * time.Millisecond,
		banner:    DefaultBanner,
		seed:      1,
		connected: true,
		faults:    make(chan error, 1),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// IsConnected reports the simulated link state.
func (s *Simulator) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// SetConnected flips the simulated link state.
func (s *Simulator) SetConnected(connected bool) {
	s.mu.Lock()
	s.connected = connected
	s.mu.Unlock()
}

// SendControlToken records the token.
func (s *Simulator) SendControlToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return types.ErrNotConnected
	}
	s.tokens = append(s.tokens, token)
	return nil
}

// Tokens returns every control token received.
func (s *Simulator) Tokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

// BeginStreaming starts the emitter goroutine.
func (s *Simulator) BeginStreaming(_ context.Context, onChunk func([]byte)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return types.ErrNotConnected
	}
	if s.streaming {
		return ErrAlreadyStreaming
	}
	s.streaming = true
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.emit(s.stop, onChunk)
	return nil
}

// EndStreaming stops the emitter and waits for it; no chunk is delivered after it returns.
func (s *Simulator) EndStreaming(context.Context) error {
	s.mu.Lock()
	if !s.streaming {
		s.mu.Unlock()
		return nil
	}
	s.streaming = false
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// Faults reports injected link failures.
func (s *Simulator) Faults() <-chan error { return s.faults }

// Delivered returns the number of valid records whose full line has been delivered.
func (s *Simulator) Delivered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered
}

// GetComponentMetadata returns the simulator metadata.
func (s *Simulator) GetComponentMetadata() types.ComponentMetadata { return s.componentMetadata }

func (s *Simulator) emit(stop <-chan struct{}, onChunk func([]byte)) {
	defer s.wg.Done()

	rng := rand.New(rand.NewSource(s.seed))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var (
		carry   []byte
		valid   []bool // validity of each line in carry, in order
		sample  int
		owed    float64
		perTick = s.rate * s.interval.Seconds()
	)
	if s.banner != "" {
		carry = append(carry, s.banner...)
		carry = append(carry, '\n')
		valid = append(valid, false)
	}

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		owed += perTick
		for ; owed >= 1; owed-- {
			rec := s.sample(sample)
			sample++
			carry = append(carry, rec.String()...)
			carry = append(carry, '\n')
			valid = append(valid, rec.Valid())
		}
		if len(carry) == 0 {
			continue
		}

		// Hold back a random tail so lines straddle deliveries.
		cut := len(carry) - rng.Intn(min(len(carry), 24))
		out := carry[:cut]
		for len(out) > 0 {
			n := 1 + rng.Intn(len(out))
			chunk := append([]byte(nil), out[:n]...)
			out = out[n:]

			select {
			case <-stop:
				return
			default:
			}
			onChunk(chunk)

			lines := bytes.Count(chunk, []byte{'\n'})
			s.mu.Lock()
			for _, ok := range valid[:lines] {
				if ok {
					s.delivered++
				}
			}
			s.chunks++
			fault := s.faultAfter > 0 && s.chunks == s.faultAfter
			s.mu.Unlock()
			valid = valid[lines:]

			if fault {
				select {
				case s.faults <- errors.New("simulated link loss"):
				default:
				}
			}
		}
		carry = append(carry[:0], carry[cut:]...)
	}
}

// sample returns record i of the synthetic waveform. Every glitchEvery-th record has a zero field.
func (s *Simulator) sample(i int) types.Record {
	t := float64(i) / s.rate
	beat := math.Sin(2*math.Pi*(s.bpm/60)*t) + 0.3*math.Sin(4*math.Pi*(s.bpm/60)*t+0.5)
	breath := 0.4 * math.Sin(2*math.Pi*(s.breaths/60)*t)

	rec := types.Record{
		C1: 2000 + int64(math.Round(300*(beat+breath))),
		C2: 1800 + int64(math.Round(260*(beat+0.8*breath))),
		C3: 1600 + int64(math.Round(220*(beat+0.6*breath))),
	}
	if s.glitchEvery > 0 && i%s.glitchEvery == s.glitchEvery-1 {
		rec.C2 = 0
	}
	return rec
}
