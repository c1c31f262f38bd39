package meter

import (
	"sync/atomic"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

func (m *Meter) counter(metric string) *uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ptr, ok := m.counts[metric]
	if !ok {
		var v uint64
		ptr = &v
		m.counts[metric] = ptr
	}
	return ptr
}

// IncrementCount adds one to a counter, registering it on first use.
func (m *Meter) IncrementCount(metric string) {
	atomic.AddUint64(m.counter(metric), 1)
}

// AddCount adds delta to a counter.
func (m *Meter) AddCount(metric string, delta uint64) {
	atomic.AddUint64(m.counter(metric), delta)
}

// GetMetricCount returns the current value of a counter.
func (m *Meter) GetMetricCount(metric string) uint64 {
	m.mu.Lock()
	ptr, ok := m.counts[metric]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return atomic.LoadUint64(ptr)
}

// SetMetricPercentage records a gauge and tracks its peak.
func (m *Meter) SetMetricPercentage(metric string, value float64) {
	m.mu.Lock()
	m.percentages[metric] = value
	if value > m.peaks[metric] {
		m.peaks[metric] = value
	}
	m.mu.Unlock()
}

// GetMetricPercentage returns the last value recorded for a gauge.
func (m *Meter) GetMetricPercentage(metric string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.percentages[metric]
}

// GetMetricPeakPercentage returns the highest value a gauge has reached.
func (m *Meter) GetMetricPeakPercentage(metric string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peaks[metric]
}

// Snapshot copies every counter and gauge.
func (m *Meter) Snapshot() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.counts)+len(m.percentages))
	for name, ptr := range m.counts {
		out[name] = float64(atomic.LoadUint64(ptr))
	}
	for name, v := range m.percentages {
		out[name] = v
	}
	return out
}

// ResetMetrics zeroes every counter and gauge.
func (m *Meter) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ptr := range m.counts {
		atomic.StoreUint64(ptr, 0)
	}
	m.percentages = make(map[string]float64)
	m.peaks = make(map[string]float64)
}

// GetComponentMetadata returns the meter metadata.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.componentMetadata
}

// SetComponentMetadata updates the meter name and id.
func (m *Meter) SetComponentMetadata(name string, id string) {
	m.mu.Lock()
	m.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: m.componentMetadata.Type}
	m.mu.Unlock()
}
