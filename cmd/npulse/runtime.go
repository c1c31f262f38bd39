package main

import (
	"context"
	"fmt"

	"github.com/joeydtaylor/npulse/pkg/builder"
)

// runtime bundles the components every command shares.
type runtime struct {
	cfg    *builder.Config
	logger builder.Logger
	meter  builder.Meter
	sensor builder.Sensor
}

func newRuntime() (*runtime, error) {
	cfg, err := builder.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}

	logger := builder.NewLogger(
		builder.LoggerWithLevel(level),
		builder.LoggerWithFields(map[string]interface{}{"app": "npulse"}),
	)
	if cfg.Log.File != "" {
		sink := builder.SinkConfig{Type: builder.FileSink, Config: map[string]interface{}{"path": cfg.Log.File}}
		if err := logger.AddSink("file", sink); err != nil {
			return nil, fmt.Errorf("log file sink: %w", err)
		}
	}

	meter := builder.NewMeter(builder.MeterWithLogger(logger))
	sensor := builder.NewSensor(
		builder.SensorWithMeter(meter),
		builder.SensorWithLogger(logger),
		builder.SensorWithComponentMetadata("npulse", builder.NewComponentID()),
	)
	return &runtime{cfg: cfg, logger: logger, meter: meter, sensor: sensor}, nil
}

func (r *runtime) close() {
	r.meter.SampleResources()
	r.meter.Report()
	_ = r.logger.Flush()
}

func (r *runtime) analyzerConfig() builder.AnalyzerConfig {
	c := builder.DefaultAnalyzerConfig()
	a := r.cfg.Analysis
	c.SamplingRate = a.SamplingRate
	c.AssumedDuration = a.AssumedDuration
	c.EdgeTrim = a.EdgeTrim
	c.TrimThreshold = a.TrimThreshold
	c.Pulse = r.cfg.PulseProfile()
	c.RespirationEnabled = a.Respiration
	c.SpectralEnabled = a.Spectral
	return c
}

func (r *runtime) newAnalyzer(options ...builder.AnalyzerOption) builder.Analyzer {
	opts := append([]builder.AnalyzerOption{
		builder.AnalyzerWithConfig(r.analyzerConfig()),
		builder.AnalyzerWithLogger(r.logger),
		builder.AnalyzerWithSensor(r.sensor),
	}, options...)
	return builder.NewAnalyzer(opts...)
}

// newLoader builds the capture loader; withS3 attaches an S3 client for s3:// sources.
func (r *runtime) newLoader(ctx context.Context, withS3 bool) (*builder.CaptureLoader, error) {
	opts := []builder.CaptureLoaderOption{
		builder.CaptureLoaderWithCleaner(r.cfg.Cleaner()),
		builder.CaptureLoaderWithHTTPClient(builder.NewHTTPClientAdapter(
			builder.HTTPClientAdapterWithLogger(r.logger),
			builder.HTTPClientAdapterWithSensor(r.sensor),
		)),
	}
	if withS3 {
		s3, err := r.newS3Adapter(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, builder.CaptureLoaderWithS3Client(s3))
	}
	return builder.NewCaptureLoader(opts...), nil
}

func (r *runtime) newS3Adapter(ctx context.Context) (*builder.S3ClientAdapter, error) {
	st := r.cfg.Storage
	cli, err := builder.NewS3Client(ctx, builder.S3ClientSettings{
		Region:         st.Region,
		Endpoint:       st.Endpoint,
		ForcePathStyle: st.ForcePathStyle,
		AccessKey:      st.AccessKey,
		SecretKey:      st.SecretKey,
		RoleARN:        st.RoleARN,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return builder.NewS3ClientAdapter(
		builder.S3ClientAdapterWithClient(cli),
		builder.S3ClientAdapterWithKeyTemplate(st.Prefix, ""),
		builder.S3ClientAdapterWithSSE(st.SSE, st.KMSKeyID),
		builder.S3ClientAdapterWithLogger(r.logger),
		builder.S3ClientAdapterWithSensor(r.sensor),
	), nil
}

func (r *runtime) newPublisher(ctx context.Context) *builder.KafkaClientAdapter {
	p := r.cfg.Publish
	cb := builder.NewCircuitBreaker(ctx, p.BreakerThreshold, p.BreakerWindow,
		builder.CircuitBreakerWithLogger(r.logger),
		builder.CircuitBreakerWithSensor(r.sensor),
	)
	return builder.NewKafkaClientAdapter(
		builder.KafkaClientAdapterWithBrokers(p.Brokers, p.Topic, p.RequiredAcks),
		builder.KafkaClientAdapterWithCircuitBreaker(cb),
		builder.KafkaClientAdapterWithLogger(r.logger),
		builder.KafkaClientAdapterWithSensor(r.sensor),
	)
}
