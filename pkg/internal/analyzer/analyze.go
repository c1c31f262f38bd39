package analyzer

import (
	"golang.org/x/sync/errgroup"

	"github.com/joeydtaylor/npulse/pkg/internal/aggregator"
	"github.com/joeydtaylor/npulse/pkg/internal/detector"
	"github.com/joeydtaylor/npulse/pkg/internal/dsp"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Analyze runs every channel independently and pools the surviving instantaneous rates into the
// combined estimate. Channels that cannot be analysed report the zero estimate and contribute
// nothing to the pool; they never fail the call. Calling Analyze twice on the same records yields
// identical estimates.
func (a *Analyzer) Analyze(records []types.Record) types.AnalysisResult {
	result := types.AnalysisResult{
		TotalSamples:    len(records),
		AssumedDuration: a.config.AssumedDuration,
		AnalyzedAt:      a.now(),
	}
	if d := a.config.AssumedDuration.Seconds(); d > 0 {
		result.SamplingRate = float64(len(records)) / d
	}

	if err := a.design(); err != nil {
		a.NotifyLoggers(types.ErrorLevel, "Analyze: filter design failed",
			"component", a.componentMetadata, "event", "analyze", "result", "FAILURE", "error", err)
		for i := range result.Channels {
			result.Channels[i] = types.ChannelResult{Index: i + 1, Samples: len(records), Skipped: true, Reason: ReasonFilterDesign}
			a.notifySkipped(i+1, ReasonFilterDesign, err)
		}
		a.notifyComplete(result)
		return result
	}

	var errs [types.ChannelCount]error
	var g errgroup.Group
	for i := 0; i < types.ChannelCount; i++ {
		g.Go(func() error {
			result.Channels[i], errs[i] = a.analyzeChannel(i, dsp.Trace(records, i))
			return nil
		})
	}
	if a.respiration != nil {
		g.Go(func() error {
			result.Respiration = a.analyzeRespiration(dsp.Trace(records, a.config.RespirationChannel))
			return nil
		})
	}
	_ = g.Wait()

	pool := make([][]float64, 0, types.ChannelCount)
	for i, ch := range result.Channels {
		if ch.Reason != "" {
			a.notifySkipped(ch.Index, ch.Reason, errs[i])
		}
		pool = append(pool, ch.Rates)
	}
	result.Combined = aggregator.Pool(pool...)

	a.notifyComplete(result)
	return result
}

func (a *Analyzer) analyzeChannel(i int, trace []float64) (types.ChannelResult, error) {
	res := types.ChannelResult{Index: i + 1, Samples: len(trace)}
	if len(trace) <= a.config.TrimThreshold {
		res.Skipped, res.Reason = true, ReasonTooShort
		return res, nil
	}

	trace = trimEdges(trace, a.config.EdgeTrim)
	res.Samples = len(trace)

	p := a.config.Pulse
	fs := a.config.SamplingRate
	filtered, err := a.pulse.Condition(trace)
	if err != nil {
		res.Skipped, res.Reason = true, ReasonInsufficientData
		return res, err
	}
	res.Filtered = filtered
	if a.config.SpectralEnabled {
		res.SpectralRate = DominantRate(filtered, fs, p.Low, p.High)
	}

	peaks, err := detector.Detect(filtered, fs, p.Separation, p.Prominence)
	res.Peaks = peaks
	if err != nil {
		res.Reason = ReasonInsufficientData
		return res, err
	}

	agg := aggregator.New(fs, p.Calibration, aggregator.Bounds{Min: p.MinRate, Max: p.MaxRate})
	res.Rates = agg.Rates(peaks)
	res.Estimate = aggregator.Summarize(res.Rates)
	return res, nil
}

func (a *Analyzer) analyzeRespiration(trace []float64) types.RateEstimate {
	p := a.config.Respiration
	fs := a.config.SamplingRate
	filtered, err := a.respiration.Condition(trace)
	if err != nil {
		return types.RateEstimate{}
	}
	peaks, err := detector.Detect(filtered, fs, p.Separation, p.Prominence)
	if err != nil {
		return types.RateEstimate{}
	}
	return aggregator.New(fs, p.Calibration, aggregator.Bounds{Min: p.MinRate, Max: p.MaxRate}).IntervalEstimate(peaks)
}

func trimEdges(trace []float64, n int) []float64 {
	if n <= 0 {
		return trace
	}
	if 2*n >= len(trace) {
		return nil
	}
	return trace[n : len(trace)-n]
}
