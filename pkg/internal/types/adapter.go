package types

import (
	"context"
	"fmt"
)

// HTTPClientAdapter retrieves remote analysis inputs.
type HTTPClientAdapter interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	GetComponentMetadata() ComponentMetadata
}

// HTTPError carries a non-2xx response.
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s, %v", e.StatusCode, e.Message, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// S3ClientAdapter reads capture objects and archives sessions.
type S3ClientAdapter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	GetComponentMetadata() ComponentMetadata
}

// PublishMessage is one message destined for the results topic.
type PublishMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// KafkaClientAdapter publishes analysis results and session summaries.
type KafkaClientAdapter interface {
	Publish(ctx context.Context, msgs ...PublishMessage) error
	Close() error
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	ConnectCircuitBreaker(CircuitBreaker)
	GetComponentMetadata() ComponentMetadata
}
