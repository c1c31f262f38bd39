package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/npulse/pkg/builder"
)

var (
	simulateDuration time.Duration
	simulateBPM      float64
	simulateBreaths  float64
	simulateSeed     int64
	simulateOut      string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a session against a simulated three-channel PPG device",
	Args:  cobra.NoArgs,
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVarP(&simulateDuration, "duration", "d", 10*time.Second, "session length")
	simulateCmd.Flags().Float64Var(&simulateBPM, "bpm", 72, "simulated heart rate")
	simulateCmd.Flags().Float64Var(&simulateBreaths, "breaths", 15, "simulated breathing rate per minute")
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 1, "random seed for chunking and noise")
	simulateCmd.Flags().StringVarP(&simulateOut, "out", "o", "", "directory for saved captures (default from config)")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	// The analyzer reports the implied rate against the simulated length, not the device default.
	rt.cfg.Analysis.AssumedDuration = simulateDuration

	sim := builder.NewSimulator(
		builder.SimulatorWithSampleRate(rt.cfg.Analysis.SamplingRate),
		builder.SimulatorWithHeartRate(simulateBPM),
		builder.SimulatorWithBreathingRate(simulateBreaths),
		builder.SimulatorWithSeed(simulateSeed),
	)
	return runSession(cmd.Context(), rt, sim, sessionOptions{
		duration:    simulateDuration,
		saveDir:     firstNonEmpty(simulateOut, rt.cfg.Acquisition.SaveDir),
		compression: rt.cfg.Acquisition.Compression,
	}, cmd.OutOrStdout())
}
