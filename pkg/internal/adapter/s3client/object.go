package s3client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

const maxBackoff = 5 * time.Second

var errNoClient = errors.New("s3client: no S3 client configured")

// GetObject downloads bucket/key. Missing objects wrap types.ErrResourceNotFound. Objects
// written with client-side encryption are decrypted.
func (a *S3ClientAdapter) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if a.cli == nil {
		return nil, errNoClient
	}
	if a.configErr != nil {
		return nil, a.configErr
	}

	out, err := a.cli.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		if isNotFound(err) {
			err = fmt.Errorf("%w: s3://%s/%s", types.ErrResourceNotFound, bucket, key)
		}
		a.NotifyLoggers(types.ErrorLevel, "GetObject: failed",
			"component", a.componentMetadata, "event", "get_object", "result", "FAILURE",
			"bucket", bucket, "key", key, "error", err)
		return nil, err
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}
	body, err = a.decryptIfNeeded(out.Metadata, body)
	if err != nil {
		return nil, err
	}

	a.NotifyLoggers(types.DebugLevel, "GetObject: complete",
		"component", a.componentMetadata, "event", "get_object", "result", "SUCCESS",
		"bucket", bucket, "key", key, "bytes", len(body))
	return body, nil
}

// PutObject uploads body to bucket/key with the configured encryption, retrying transient
// failures with exponential backoff.
func (a *S3ClientAdapter) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	if a.cli == nil {
		return errNoClient
	}
	if a.configErr != nil {
		return a.configErr
	}

	payload, contentType, meta, err := a.applyCSE(body, contentType)
	if err != nil {
		return err
	}

	put := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Metadata:    meta,
	}
	switch strings.ToLower(a.sseMode) {
	case "aes256":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	case "aws:kms":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		if a.kmsKey != "" {
			put.SSEKMSKeyId = aws.String(a.kmsKey)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		put.Body = bytes.NewReader(payload)

		start := time.Now()
		_, err := a.cli.PutObject(ctx, put)
		dur := time.Since(start)
		if err == nil {
			for _, sensor := range a.snapshotSensors() {
				sensor.InvokeOnS3PutSuccess(a.componentMetadata, bucket, key, len(payload), dur)
			}
			a.NotifyLoggers(types.InfoLevel, "PutObject: archived",
				"component", a.componentMetadata, "event", "put_object", "result", "SUCCESS",
				"bucket", bucket, "key", key, "bytes", len(payload), "duration", dur)
			return nil
		}

		lastErr = err
		a.NotifyLoggers(types.WarnLevel, "PutObject: attempt failed",
			"component", a.componentMetadata, "event", "put_object", "result", "RETRY",
			"attempt", attempt, "max_attempts", a.maxAttempts, "key", key, "error", err)

		if !isRetryable(err) || attempt == a.maxAttempts || ctx.Err() != nil {
			break
		}
		select {
		case <-time.After(a.backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}

	for _, sensor := range a.snapshotSensors() {
		sensor.InvokeOnS3PutError(a.componentMetadata, bucket, key, lastErr)
	}
	return lastErr
}

// ListKeys returns the keys under prefix, filtered to the given suffixes when any are supplied.
func (a *S3ClientAdapter) ListKeys(ctx context.Context, bucket, prefix string, suffixes ...string) ([]string, error) {
	if a.cli == nil {
		return nil, errNoClient
	}
	var keys []string
	var cont *string
	for {
		out, err := a.cli.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: cont,
			MaxKeys:           aws.Int32(1000),
		})
		if err != nil {
			return nil, err
		}
		for _, o := range out.Contents {
			k := aws.ToString(o.Key)
			if len(suffixes) == 0 || hasSuffixFold(k, suffixes) {
				keys = append(keys, k)
			}
		}
		if !aws.ToBool(out.IsTruncated) {
			return keys, nil
		}
		cont = out.NextContinuationToken
	}
}

func (a *S3ClientAdapter) backoff(attempt int) time.Duration {
	d := a.baseBackoff << (attempt - 1)
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}
	return time.Duration(rand.Int63n(int64(d) + 1))
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *s3types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return true
		}
	}
	var respErr *smithyhttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		code := respErr.HTTPStatusCode()
		return code >= 500 || code == http.StatusTooManyRequests
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"throttl", "slowdown", "timeout", "tempor", "connection reset", "eof"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func hasSuffixFold(key string, suffixes []string) bool {
	lower := strings.ToLower(key)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
