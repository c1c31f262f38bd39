package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/joeydtaylor/npulse/pkg/builder"
)

const progressEvery = 100

type sessionOptions struct {
	duration    time.Duration
	saveDir     string
	compression string
	archive     bool
	publish     bool
}

// runSession collects one session over t, saves it, prints the analysis and optionally
// archives and publishes it.
func runSession(ctx context.Context, rt *runtime, t builder.Transport, opts sessionOptions, out io.Writer) error {
	acq := rt.cfg.Acquisition
	bridge := builder.NewTransportBridge(t,
		builder.BridgeWithCallTimeout(acq.CallTimeout),
		builder.BridgeWithLogger(rt.logger),
	)
	defer bridge.Close()

	observer := builder.NewObserver(acq.ObserverBuffer)
	engine := builder.NewAcquisitionEngine(bridge,
		builder.AcquisitionWithStartToken(acq.StartToken),
		builder.AcquisitionWithStopToken(acq.StopToken),
		builder.AcquisitionWithTick(acq.Tick),
		builder.AcquisitionWithStopTimeout(acq.StopTimeout),
		builder.AcquisitionWithObserver(observer),
		builder.AcquisitionWithLogger(rt.logger),
		builder.AcquisitionWithSensor(rt.sensor),
	)

	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for u := range observer.Updates() {
			if u.Count%progressEvery == 0 {
				fmt.Fprintf(out, "collected %d records\n", u.Count)
			}
		}
	}()

	fmt.Fprintf(out, "collecting for %s\n", opts.duration)
	records, summary, collectErr := engine.Collect(ctx, opts.duration)
	observer.Close()
	<-progressDone

	fmt.Fprintf(out, "session %s: %s, %d records in %s\n",
		summary.ID, summary.State, summary.SampleCount, summary.Elapsed.Round(time.Millisecond))
	if len(records) == 0 {
		return collectErr
	}

	compression, err := builder.ParseCompression(opts.compression)
	if err != nil {
		return err
	}
	path, err := engine.Save(opts.saveDir, compression)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(out, "saved %s\n", path)

	result := rt.newAnalyzer().Analyze(records)
	fmt.Fprint(out, builder.FormatSummary(result))

	if opts.archive {
		if err := rt.archive(ctx, records, result, filepath.Base(path)); err != nil {
			rt.logger.Error("Archive failed", "component", "npulse", "event", "archive", "result", "FAILURE", "error", err)
		}
	}
	if opts.publish {
		sessionMsg, err := builder.SessionMessage(summary)
		if err != nil {
			return err
		}
		analysisMsg, err := builder.AnalysisMessage(result)
		if err != nil {
			return err
		}
		if err := rt.publish(ctx, sessionMsg, analysisMsg); err != nil {
			rt.logger.Error("Publish failed", "component", "npulse", "event", "publish", "result", "FAILURE", "error", err)
		}
	}
	return collectErr
}
