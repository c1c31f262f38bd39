package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/npulse/pkg/builder"
)

var (
	serveAddr     string
	serveURL      string
	serveSimulate bool
	serveArchive  bool
	servePublish  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the capture, analysis and live session API",
	Long: `Serve exposes:

  GET    /files             saved captures, newest first
  POST   /analyze           analyze {"source": "<capture name|s3://bucket/key|url>"}
  POST   /sessions          start a session (?duration=30s)
  GET    /sessions/current  state, sample count and the last session's analysis
  DELETE /sessions/current  cancel the running session
  GET    /stream            accepted records as server-sent events

Local sources must be captures listed by /files. URLs are refused unless
server.remote_sources is set.

Sessions run against the websocket device bridge, or the simulator with --simulate.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveURL, "url", "", "device bridge websocket URL (default from config)")
	serveCmd.Flags().BoolVar(&serveSimulate, "simulate", false, "use the simulated device instead of the bridge")
	serveCmd.Flags().BoolVar(&serveArchive, "archive", false, "upload finished sessions to the configured S3 bucket")
	serveCmd.Flags().BoolVar(&servePublish, "publish", false, "publish finished sessions to Kafka")
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	cfg := rt.cfg
	go rt.meter.Monitor(ctx, time.Minute)
	opts := []builder.HTTPServerAdapterOption{
		builder.HTTPServerAdapterWithAddress(firstNonEmpty(serveAddr, cfg.Server.Address)),
		builder.HTTPServerAdapterWithTimeout(cfg.Server.ReadTimeout),
		builder.HTTPServerAdapterWithAnalyzer(rt.newAnalyzer()),
		builder.HTTPServerAdapterWithLogger(rt.logger),
		builder.HTTPServerAdapterWithSensor(rt.sensor),
		builder.HTTPServerAdapterWithSaveDir(cfg.Acquisition.SaveDir),
		builder.HTTPServerAdapterWithRemoteSources(cfg.Server.RemoteSources),
	}
	if cfg.Server.TLSCert != "" {
		opts = append(opts, builder.HTTPServerAdapterWithTLS(cfg.Server.TLSCert, cfg.Server.TLSKey))
	}

	loader, err := rt.newLoader(ctx, cfg.Storage.Bucket != "" || cfg.Storage.Endpoint != "")
	if err != nil {
		return err
	}
	opts = append(opts, builder.HTTPServerAdapterWithLoader(loader))

	transport, closeTransport, err := serveTransport(ctx, rt)
	if err != nil {
		return err
	}
	defer closeTransport()

	if transport != nil {
		acq := cfg.Acquisition
		bridge := builder.NewTransportBridge(transport,
			builder.BridgeWithCallTimeout(acq.CallTimeout),
			builder.BridgeWithLogger(rt.logger),
		)
		defer bridge.Close()

		observer := builder.NewObserver(acq.ObserverBuffer)
		defer observer.Close()
		engine := builder.NewAcquisitionEngine(bridge,
			builder.AcquisitionWithStartToken(acq.StartToken),
			builder.AcquisitionWithStopToken(acq.StopToken),
			builder.AcquisitionWithTick(acq.Tick),
			builder.AcquisitionWithStopTimeout(acq.StopTimeout),
			builder.AcquisitionWithObserver(observer),
			builder.AcquisitionWithLogger(rt.logger),
			builder.AcquisitionWithSensor(rt.sensor),
		)
		compression, err := builder.ParseCompression(acq.Compression)
		if err != nil {
			return err
		}
		opts = append(opts,
			builder.HTTPServerAdapterWithEngine(engine),
			builder.HTTPServerAdapterWithObserver(observer),
			builder.HTTPServerAdapterWithSessionDefaults(acq.Duration, acq.SaveDir, compression),
			builder.HTTPServerAdapterWithSessionHook(rt.sessionHook(serveArchive, servePublish)),
		)
	}

	return builder.NewHTTPServerAdapter(opts...).Serve(ctx)
}

// serveTransport picks the device link. Without --simulate or a URL the API serves analysis only.
func serveTransport(ctx context.Context, rt *runtime) (builder.Transport, func(), error) {
	if serveSimulate {
		return builder.NewSimulator(builder.SimulatorWithSampleRate(rt.cfg.Analysis.SamplingRate)), func() {}, nil
	}
	url := firstNonEmpty(serveURL, rt.cfg.Transport.URL)
	if url == "" {
		return nil, func() {}, nil
	}
	ws := builder.NewWebSocketTransport(
		builder.WebSocketWithURL(url),
		builder.WebSocketWithHeaders(rt.cfg.Transport.Headers),
		builder.WebSocketWithReadLimit(rt.cfg.Transport.ReadLimit),
		builder.WebSocketWithLogger(rt.logger),
		builder.WebSocketWithSensor(rt.sensor),
	)
	if err := ws.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("connect %s: %w", url, err)
	}
	return ws, func() { _ = ws.Close() }, nil
}

// sessionHook archives and publishes sessions finished through the API.
func (r *runtime) sessionHook(archive, publish bool) builder.SessionHook {
	return func(ctx context.Context, records []builder.Record, summary builder.SessionSummary, result builder.AnalysisResult) {
		if archive && len(records) > 0 {
			if err := r.archive(ctx, records, result, summary.ID); err != nil {
				r.logger.Error("Archive failed", "component", "npulse", "event", "archive", "result", "FAILURE", "error", err)
			}
		}
		if !publish {
			return
		}
		sessionMsg, err := builder.SessionMessage(summary)
		if err != nil {
			return
		}
		msgs := []builder.PublishMessage{sessionMsg}
		if len(records) > 0 {
			if analysisMsg, err := builder.AnalysisMessage(result); err == nil {
				msgs = append(msgs, analysisMsg)
			}
		}
		if err := r.publish(ctx, msgs...); err != nil {
			r.logger.Error("Publish failed", "component", "npulse", "event", "publish", "result", "FAILURE", "error", err)
		}
	}
}
