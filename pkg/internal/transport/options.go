package transport

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithCallTimeout bounds each bridged call.
func WithCallTimeout(d time.Duration) types.Option[*Bridge] {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithLogger attaches loggers to the bridge.
func WithLogger(loggers ...types.Logger) types.Option[*Bridge] {
	return func(b *Bridge) { b.ConnectLogger(loggers...) }
}

// WithSampleRate sets the simulated samples per second.
func WithSampleRate(rate float64) types.Option[*Simulator] {
	return func(s *Simulator) {
		if rate > 0 {
			s.rate = rate
		}
	}
}

// WithHeartRate sets the simulated pulse in beats per minute.
func WithHeartRate(bpm float64) types.Option[*Simulator] {
	return func(s *Simulator) {
		if bpm > 0 {
			s.bpm = bpm
		}
	}
}

// WithBreathingRate sets the simulated respiration in breaths per minute.
func WithBreathingRate(bpm float64) types.Option[*Simulator] {
	return func(s *Simulator) {
		if bpm > 0 {
			s.breaths = bpm
		}
	}
}

// WithEmitInterval sets how often the simulator delivers data.
func WithEmitInterval(d time.Duration) types.Option[*Simulator] {
	return func(s *Simulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithGlitchEvery zeroes one field of every n-th record.
func WithGlitchEvery(n int) types.Option[*Simulator] {
	return func(s *Simulator) { s.glitchEvery = n }
}

// WithBanner sets the line emitted before the first record; empty disables it.
func WithBanner(banner string) types.Option[*Simulator] {
	return func(s *Simulator) { s.banner = banner }
}

// WithSeed fixes the chunk-boundary generator.
func WithSeed(seed int64) types.Option[*Simulator] {
	return func(s *Simulator) { s.seed = seed }
}

// WithFaultAfter reports a link failure after n delivered chunks.
func WithFaultAfter(n int) types.Option[*Simulator] {
	return func(s *Simulator) { s.faultAfter = n }
}
