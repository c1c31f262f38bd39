package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/npulse/pkg/builder"
)

var (
	analyzeDuration time.Duration
	analyzePublish  bool
	analyzeExport   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path|url|s3://bucket/key>",
	Short: "Estimate heart rate from a saved capture",
	Long: `Analyze loads a capture from a local file, an http(s) URL or an S3 object, cleans the
device banners, and prints per-sensor and combined heart-rate estimates.

Compressed captures (.gz, .sz, .zst, .br, .lz4) and .parquet exports are decoded by extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().DurationVarP(&analyzeDuration, "duration", "d", 0, "capture length used for the implied sampling rate (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzePublish, "publish", false, "publish the result to the configured Kafka topic")
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "", "write the estimates as a parquet file to this path")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	source := args[0]
	loader, err := rt.newLoader(ctx, strings.HasPrefix(source, "s3://"))
	if err != nil {
		return err
	}
	records, err := loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}

	var opts []builder.AnalyzerOption
	if analyzeDuration > 0 {
		opts = append(opts, builder.AnalyzerWithAssumedDuration(analyzeDuration))
	}
	result := rt.newAnalyzer(opts...).Analyze(records)
	fmt.Fprint(cmd.OutOrStdout(), builder.FormatSummary(result))

	if analyzeExport != "" {
		data, err := builder.EncodeEstimatesParquet(result, rt.cfg.Storage.ParquetCodec)
		if err != nil {
			return fmt.Errorf("export estimates: %w", err)
		}
		if err := os.WriteFile(analyzeExport, data, 0o644); err != nil {
			return fmt.Errorf("export estimates: %w", err)
		}
	}

	if analyzePublish {
		msg, err := builder.AnalysisMessage(result)
		if err != nil {
			return err
		}
		return rt.publish(ctx, msg)
	}
	return nil
}
