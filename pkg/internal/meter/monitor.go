package meter

import (
	"context"
	"sort"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// SampleResources refreshes CPU and memory gauges from the host.
func (m *Meter) SampleResources() {
	m.mu.Lock()
	window := m.sampleWindow
	m.mu.Unlock()

	if cpuPercentages, err := cpu.Percent(window, false); err == nil && len(cpuPercentages) > 0 {
		m.SetMetricPercentage(types.MetricCurrentCpuPercentage, cpuPercentages[0])
	}
	if memStats, err := mem.VirtualMemory(); err == nil && memStats != nil {
		m.SetMetricPercentage(types.MetricCurrentRamPercentage, memStats.UsedPercent)
	}
}

// Report logs the non-zero metrics in name order.
func (m *Meter) Report() {
	snap := m.Snapshot()
	names := make([]string, 0, len(snap))
	for name, v := range snap {
		if v == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	kv := []interface{}{
		"component", m.GetComponentMetadata(),
		"event", "report",
		"uptime", time.Since(m.startTime).Round(time.Millisecond).String(),
	}
	for _, name := range names {
		kv = append(kv, name, snap[name])
	}
	m.NotifyLoggers(types.InfoLevel, "Meter report", kv...)
}

// Monitor samples resources and reports on every tick until ctx is done, then reports once more.
func (m *Meter) Monitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Report()
			return
		case <-ticker.C:
			m.SampleResources()
			m.Report()
		}
	}
}
