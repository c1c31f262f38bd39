package main

import (
	"context"
	"errors"
	"time"

	"github.com/joeydtaylor/npulse/pkg/builder"
)

// archive uploads the capture text, and the parquet exports when enabled, to the configured bucket.
func (r *runtime) archive(ctx context.Context, records []builder.Record, result builder.AnalysisResult, name string) error {
	st := r.cfg.Storage
	if st.Bucket == "" {
		return errors.New("archive: no bucket configured")
	}
	s3, err := r.newS3Adapter(ctx)
	if err != nil {
		return err
	}

	compression, err := builder.ParseCompression(st.Compression)
	if err != nil {
		return err
	}
	body, err := builder.CompressCapture(builder.EncodeCaptureText(records), compression)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	key := s3.RenderKey(now, ".txt"+compression.Extension())
	if err := s3.PutObject(ctx, st.Bucket, key, body, "text/plain"); err != nil {
		return err
	}
	r.logger.Info("Archived capture", "component", "npulse", "event", "archive", "result", "SUCCESS",
		"bucket", st.Bucket, "key", key, "capture", name)

	if !st.Parquet {
		return nil
	}
	samples, err := builder.EncodeRecordsParquet(records, st.ParquetCodec)
	if err != nil {
		return err
	}
	if err := s3.PutObject(ctx, st.Bucket, s3.RenderKey(now, ".parquet"), samples, "application/vnd.apache.parquet"); err != nil {
		return err
	}
	estimates, err := builder.EncodeEstimatesParquet(result, st.ParquetCodec)
	if err != nil {
		return err
	}
	return s3.PutObject(ctx, st.Bucket, s3.RenderKey(now, ".estimates.parquet"), estimates, "application/vnd.apache.parquet")
}

// publish writes msgs to the results topic and closes the writer.
func (r *runtime) publish(ctx context.Context, msgs ...builder.PublishMessage) error {
	if len(r.cfg.Publish.Brokers) == 0 {
		return errors.New("publish: no brokers configured")
	}
	p := r.newPublisher(ctx)
	defer p.Close()
	return p.Publish(ctx, msgs...)
}
