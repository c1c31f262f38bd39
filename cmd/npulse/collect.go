package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/npulse/pkg/builder"
)

var (
	collectURL         string
	collectDuration    time.Duration
	collectOut         string
	collectCompression string
	collectArchive     bool
	collectPublish     bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run one acquisition session against a device bridge",
	Long: `Collect connects to the websocket device bridge, arms the device with the start token,
records for the requested duration, then saves and analyzes the capture.

Partial captures are saved when the link drops mid-session; the command still exits non-zero.`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectURL, "url", "", "device bridge websocket URL (default from config)")
	collectCmd.Flags().DurationVarP(&collectDuration, "duration", "d", 0, "session length (default from config)")
	collectCmd.Flags().StringVarP(&collectOut, "out", "o", "", "directory for saved captures (default from config)")
	collectCmd.Flags().StringVar(&collectCompression, "compression", "", "capture file compression: none, gzip, snappy, zstd, brotli, lz4")
	collectCmd.Flags().BoolVar(&collectArchive, "archive", false, "upload the capture to the configured S3 bucket")
	collectCmd.Flags().BoolVar(&collectPublish, "publish", false, "publish the session and analysis to Kafka")
}

func runCollect(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	cfg := rt.cfg
	url := firstNonEmpty(collectURL, cfg.Transport.URL)
	if url == "" {
		return errors.New("collect: no device URL, pass --url or set transport.url")
	}

	ctx := cmd.Context()
	ws := builder.NewWebSocketTransport(
		builder.WebSocketWithURL(url),
		builder.WebSocketWithHeaders(cfg.Transport.Headers),
		builder.WebSocketWithReadLimit(cfg.Transport.ReadLimit),
		builder.WebSocketWithLogger(rt.logger),
		builder.WebSocketWithSensor(rt.sensor),
	)
	if err := ws.Connect(ctx); err != nil {
		return fmt.Errorf("connect %s: %w", url, err)
	}
	defer ws.Close()

	return runSession(ctx, rt, ws, sessionOptions{
		duration:    durationOr(collectDuration, cfg.Acquisition.Duration),
		saveDir:     firstNonEmpty(collectOut, cfg.Acquisition.SaveDir),
		compression: firstNonEmpty(collectCompression, cfg.Acquisition.Compression),
		archive:     collectArchive,
		publish:     collectPublish,
	}, cmd.OutOrStdout())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func durationOr(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}
