package sensor

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// RegisterOnHTTPClientRequestStart registers callbacks for HTTP request start events.
func (s *Sensor) RegisterOnHTTPClientRequestStart(callback ...func(types.ComponentMetadata)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnHTTPClientRequestStart = append(s.OnHTTPClientRequestStart, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnHTTPClientRequestStart invokes callbacks for HTTP request start events.
func (s *Sensor) InvokeOnHTTPClientRequestStart(c types.ComponentMetadata) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnHTTPClientRequestStart) {
		if cb == nil {
			continue
		}
		cb(c)
	}
}

// RegisterOnHTTPClientError registers callbacks for HTTP client errors.
func (s *Sensor) RegisterOnHTTPClientError(callback ...func(types.ComponentMetadata, error)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnHTTPClientError = append(s.OnHTTPClientError, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnHTTPClientError invokes callbacks for HTTP client errors.
func (s *Sensor) InvokeOnHTTPClientError(c types.ComponentMetadata, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnHTTPClientError) {
		if cb == nil {
			continue
		}
		cb(c, err)
	}
}

// RegisterOnHTTPClientRequestComplete registers callbacks for HTTP request completion events.
func (s *Sensor) RegisterOnHTTPClientRequestComplete(callback ...func(types.ComponentMetadata)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnHTTPClientRequestComplete = append(s.OnHTTPClientRequestComplete, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnHTTPClientRequestComplete invokes callbacks for HTTP request completion events.
func (s *Sensor) InvokeOnHTTPClientRequestComplete(c types.ComponentMetadata) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnHTTPClientRequestComplete) {
		if cb == nil {
			continue
		}
		cb(c)
	}
}

// RegisterOnHTTPServerError registers callbacks for failed API requests.
func (s *Sensor) RegisterOnHTTPServerError(callback ...func(types.ComponentMetadata, error)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnHTTPServerError = append(s.OnHTTPServerError, callback...)
	s.callbackLock.Unlock()
}

func (s *Sensor) InvokeOnHTTPServerError(c types.ComponentMetadata, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnHTTPServerError) {
		if cb == nil {
			continue
		}
		cb(c, err)
	}
}
