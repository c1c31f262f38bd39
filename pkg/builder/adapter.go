package builder

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/npulse/pkg/internal/adapter/httpclient"
	"github.com/joeydtaylor/npulse/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/npulse/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type (
	HTTPClientAdapter  = httpclient.HTTPClientAdapter
	S3ClientAdapter    = s3client.S3ClientAdapter
	S3ClientSettings   = s3client.ClientSettings
	KafkaClientAdapter = kafkaclient.KafkaClientAdapter
)

// NewHTTPClientAdapter creates the adapter used to fetch remote captures.
func NewHTTPClientAdapter(options ...types.Option[*httpclient.HTTPClientAdapter]) *httpclient.HTTPClientAdapter {
	return httpclient.NewHTTPClientAdapter(options...)
}

func HTTPClientAdapterWithHeader(key, value string) types.Option[*httpclient.HTTPClientAdapter] {
	return httpclient.WithHeader(key, value)
}

// HTTPClientAdapterWithTimeout sets the per-attempt timeout.
func HTTPClientAdapterWithTimeout(timeout time.Duration) types.Option[*httpclient.HTTPClientAdapter] {
	return httpclient.WithTimeout(timeout)
}

func HTTPClientAdapterWithMaxRetries(n int, delay time.Duration) types.Option[*httpclient.HTTPClientAdapter] {
	return httpclient.WithMaxRetries(n, delay)
}

func HTTPClientAdapterWithTLSPinnedCertificate(certPath string) types.Option[*httpclient.HTTPClientAdapter] {
	return httpclient.WithTLSPinnedCertificate(certPath)
}

func HTTPClientAdapterWithLogger(l ...types.Logger) types.Option[*httpclient.HTTPClientAdapter] {
	return httpclient.WithLogger(l...)
}

func HTTPClientAdapterWithSensor(s ...types.Sensor) types.Option[*httpclient.HTTPClientAdapter] {
	return httpclient.WithSensor(s...)
}

// NewS3Client builds an *s3.Client, assuming RoleARN through STS when set.
func NewS3Client(ctx context.Context, cfg s3client.ClientSettings) (*s3.Client, error) {
	return s3client.NewClient(ctx, cfg)
}

// NewS3ClientAdapter creates the capture archive adapter.
func NewS3ClientAdapter(options ...types.Option[*s3client.S3ClientAdapter]) *s3client.S3ClientAdapter {
	return s3client.NewS3ClientAdapter(options...)
}

func S3ClientAdapterWithClient(cli *s3.Client) types.Option[*s3client.S3ClientAdapter] {
	return s3client.WithClient(cli)
}

// S3ClientAdapterWithKeyTemplate sets the archive key templates.
func S3ClientAdapterWithKeyTemplate(prefix, fileName string) types.Option[*s3client.S3ClientAdapter] {
	return s3client.WithKeyTemplate(prefix, fileName)
}

func S3ClientAdapterWithSSE(mode, kmsKey string) types.Option[*s3client.S3ClientAdapter] {
	return s3client.WithSSE(mode, kmsKey)
}

func S3ClientAdapterWithClientSideEncryption(keyHex string) types.Option[*s3client.S3ClientAdapter] {
	return s3client.WithClientSideEncryption(keyHex)
}

func S3ClientAdapterWithLogger(l ...types.Logger) types.Option[*s3client.S3ClientAdapter] {
	return s3client.WithLogger(l...)
}

func S3ClientAdapterWithSensor(s ...types.Sensor) types.Option[*s3client.S3ClientAdapter] {
	return s3client.WithSensor(s...)
}

// NewKafkaClientAdapter creates the results publisher.
func NewKafkaClientAdapter(options ...types.Option[*kafkaclient.KafkaClientAdapter]) *kafkaclient.KafkaClientAdapter {
	return kafkaclient.NewKafkaClientAdapter(options...)
}

// KafkaClientAdapterWithBrokers builds a kafka-go writer for brokers and topic.
func KafkaClientAdapterWithBrokers(brokers []string, topic string, requiredAcks string) types.Option[*kafkaclient.KafkaClientAdapter] {
	return kafkaclient.WithBrokers(brokers, topic, kafkaclient.WriterWithRequiredAcks(requiredAcks))
}

func KafkaClientAdapterWithCircuitBreaker(cb types.CircuitBreaker) types.Option[*kafkaclient.KafkaClientAdapter] {
	return kafkaclient.WithCircuitBreaker(cb)
}

func KafkaClientAdapterWithLogger(l ...types.Logger) types.Option[*kafkaclient.KafkaClientAdapter] {
	return kafkaclient.WithLogger(l...)
}

func KafkaClientAdapterWithSensor(s ...types.Sensor) types.Option[*kafkaclient.KafkaClientAdapter] {
	return kafkaclient.WithSensor(s...)
}

// AnalysisMessage encodes an analysis result for publishing.
func AnalysisMessage(res types.AnalysisResult) (types.PublishMessage, error) {
	return kafkaclient.AnalysisMessage(res)
}

// SessionMessage encodes a session summary for publishing.
func SessionMessage(summary types.SessionSummary) (types.PublishMessage, error) {
	return kafkaclient.SessionMessage(summary)
}
