package s3client

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithClient sets the S3 client.
func WithClient(cli *s3.Client) types.Option[*S3ClientAdapter] {
	return func(a *S3ClientAdapter) {
		if cli != nil {
			a.cli = cli
		}
	}
}

// WithKeyTemplate sets the archive prefix and file name templates (see RenderKey).
func WithKeyTemplate(prefix, fileName string) types.Option[*S3ClientAdapter] {
	return func(a *S3ClientAdapter) {
		if prefix != "" {
			a.prefixTemplate = prefix
		}
		if fileName != "" {
			a.fileNameTmpl = fileName
		}
	}
}

// WithSSE enables server-side encryption ("AES256" or "aws:kms").
func WithSSE(mode, kmsKey string) types.Option[*S3ClientAdapter] {
	return func(a *S3ClientAdapter) {
		a.sseMode = mode
		a.kmsKey = kmsKey
	}
}

// WithClientSideEncryption encrypts archived objects with AES-256-GCM using a hex key.
// An invalid key makes every subsequent put and get fail.
func WithClientSideEncryption(keyHex string) types.Option[*S3ClientAdapter] {
	return func(a *S3ClientAdapter) {
		key, err := parseAESGCMKeyHex(keyHex)
		if err != nil {
			a.configErr = err
			return
		}
		a.cseKey = key
	}
}

// WithPutRetry sets the upload attempt limit and the base backoff.
func WithPutRetry(maxAttempts int, baseBackoff time.Duration) types.Option[*S3ClientAdapter] {
	return func(a *S3ClientAdapter) {
		if maxAttempts > 0 {
			a.maxAttempts = maxAttempts
		}
		if baseBackoff > 0 {
			a.baseBackoff = baseBackoff
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[*S3ClientAdapter] {
	return func(a *S3ClientAdapter) { a.ConnectLogger(l...) }
}

// WithSensor attaches sensors.
func WithSensor(s ...types.Sensor) types.Option[*S3ClientAdapter] {
	return func(a *S3ClientAdapter) { a.ConnectSensor(s...) }
}
