package analyzer

import (
	"fmt"
	"strings"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// FormatSummary renders one line per channel, the combined line and, when present, the
// respiration line.
func FormatSummary(res types.AnalysisResult) string {
	var sb strings.Builder
	for _, ch := range res.Channels {
		fmt.Fprintf(&sb, "Sensor %d: %s BPM\n", ch.Index, formatEstimate(ch.Estimate))
	}
	fmt.Fprintf(&sb, "Combined: %s BPM\n", formatEstimate(res.Combined))
	if !res.Respiration.IsZero() {
		fmt.Fprintf(&sb, "Respiration: %s breaths/min\n", formatEstimate(res.Respiration))
	}
	return sb.String()
}

func formatEstimate(e types.RateEstimate) string {
	return fmt.Sprintf("Avg %.1f | Min %.1f | Max %.1f", e.Average, e.Minimum, e.Maximum)
}
