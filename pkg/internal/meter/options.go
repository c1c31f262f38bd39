package meter

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithLogger attaches loggers used by Report.
func WithLogger(logger ...types.Logger) types.Option[types.Meter] {
	return func(m types.Meter) {
		m.ConnectLogger(logger...)
	}
}

// WithSampleWindow sets the CPU averaging window used by SampleResources.
func WithSampleWindow(window time.Duration) types.Option[types.Meter] {
	return func(m types.Meter) {
		if mm, ok := m.(*Meter); ok && window > 0 {
			mm.mu.Lock()
			mm.sampleWindow = window
			mm.mu.Unlock()
		}
	}
}

// WithComponentMetadata sets the component metadata for the Meter.
func WithComponentMetadata(name string, id string) types.Option[types.Meter] {
	return func(m types.Meter) {
		if mm, ok := m.(*Meter); ok {
			mm.SetComponentMetadata(name, id)
		}
	}
}
