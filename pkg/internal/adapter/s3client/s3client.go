// Package s3client reads capture objects from S3 and archives finished sessions to it.
package s3client

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// objectAPI is the subset of *s3.Client the adapter calls.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3ClientAdapter wraps an S3 client with the archive conventions used by npulse: rendered key
// prefixes, optional server-side or client-side encryption, and upload retries.
type S3ClientAdapter struct {
	componentMetadata types.ComponentMetadata

	cli objectAPI

	prefixTemplate string
	fileNameTmpl   string

	sseMode string // "" | "AES256" | "aws:kms"
	kmsKey  string
	cseKey  []byte

	maxAttempts int
	baseBackoff time.Duration
	configErr   error

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorLock  sync.Mutex
}

var _ types.S3ClientAdapter = (*S3ClientAdapter)(nil)

// NewS3ClientAdapter returns an adapter. A client must be supplied with WithClient before use.
func NewS3ClientAdapter(options ...types.Option[*S3ClientAdapter]) *S3ClientAdapter {
	a := &S3ClientAdapter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "S3_CLIENT",
		},
		prefixTemplate: "npulse/sessions/{yyyy}/{MM}/{dd}/",
		fileNameTmpl:   "{ts}-{id}",
		maxAttempts:    3,
		baseBackoff:    200 * time.Millisecond,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// GetComponentMetadata returns the adapter metadata.
func (a *S3ClientAdapter) GetComponentMetadata() types.ComponentMetadata { return a.componentMetadata }

// SetComponentMetadata sets name and id, keeping the type.
func (a *S3ClientAdapter) SetComponentMetadata(name, id string) {
	a.componentMetadata.Name = name
	a.componentMetadata.ID = id
}

// ConnectLogger attaches loggers.
func (a *S3ClientAdapter) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

// ConnectSensor attaches sensors.
func (a *S3ClientAdapter) ConnectSensor(sensors ...types.Sensor) {
	a.sensorLock.Lock()
	defer a.sensorLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			a.sensors = append(a.sensors, s)
		}
	}
}
