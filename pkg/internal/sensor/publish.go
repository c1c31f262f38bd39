package sensor

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// RegisterOnPublishSuccess registers callbacks for successful publishes.
func (s *Sensor) RegisterOnPublishSuccess(callback ...func(types.ComponentMetadata, string, int, time.Duration)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnPublishSuccess = append(s.OnPublishSuccess, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnPublishSuccess invokes callbacks for successful publishes.
func (s *Sensor) InvokeOnPublishSuccess(c types.ComponentMetadata, topic string, bytes int, dur time.Duration) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnPublishSuccess) {
		if cb == nil {
			continue
		}
		cb(c, topic, bytes, dur)
	}
}

// RegisterOnPublishError registers callbacks for failed publishes.
func (s *Sensor) RegisterOnPublishError(callback ...func(types.ComponentMetadata, string, error)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnPublishError = append(s.OnPublishError, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnPublishError invokes callbacks for failed publishes.
func (s *Sensor) InvokeOnPublishError(c types.ComponentMetadata, topic string, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnPublishError) {
		if cb == nil {
			continue
		}
		cb(c, topic, err)
	}
}

// RegisterOnS3PutSuccess registers callbacks for successful archive uploads.
func (s *Sensor) RegisterOnS3PutSuccess(callback ...func(types.ComponentMetadata, string, string, int, time.Duration)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnS3PutSuccess = append(s.OnS3PutSuccess, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnS3PutSuccess invokes callbacks for successful archive uploads.
func (s *Sensor) InvokeOnS3PutSuccess(c types.ComponentMetadata, bucket string, key string, bytes int, dur time.Duration) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnS3PutSuccess) {
		if cb == nil {
			continue
		}
		cb(c, bucket, key, bytes, dur)
	}
}

// RegisterOnS3PutError registers callbacks for failed archive uploads.
func (s *Sensor) RegisterOnS3PutError(callback ...func(types.ComponentMetadata, string, string, error)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnS3PutError = append(s.OnS3PutError, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnS3PutError invokes callbacks for failed archive uploads.
func (s *Sensor) InvokeOnS3PutError(c types.ComponentMetadata, bucket string, key string, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnS3PutError) {
		if cb == nil {
			continue
		}
		cb(c, bucket, key, err)
	}
}
