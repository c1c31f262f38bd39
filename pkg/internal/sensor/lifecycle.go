package sensor

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// RegisterOnStart registers callbacks for session start events.
func (s *Sensor) RegisterOnStart(callback ...func(types.ComponentMetadata)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnStart = append(s.OnStart, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnStart invokes callbacks for session start events.
func (s *Sensor) InvokeOnStart(c types.ComponentMetadata) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStart) {
		if cb == nil {
			continue
		}
		cb(c)
	}
}

// RegisterOnStateChange registers callbacks for session state transitions.
func (s *Sensor) RegisterOnStateChange(callback ...func(types.ComponentMetadata, types.SessionState, types.SessionState)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnStateChange = append(s.OnStateChange, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnStateChange invokes callbacks for session state transitions.
func (s *Sensor) InvokeOnStateChange(c types.ComponentMetadata, from types.SessionState, to types.SessionState) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStateChange) {
		if cb == nil {
			continue
		}
		cb(c, from, to)
	}
}

// RegisterOnComplete registers callbacks for completed sessions.
func (s *Sensor) RegisterOnComplete(callback ...func(types.ComponentMetadata, types.SessionSummary)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnComplete = append(s.OnComplete, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnComplete invokes callbacks for completed sessions.
func (s *Sensor) InvokeOnComplete(c types.ComponentMetadata, summary types.SessionSummary) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnComplete) {
		if cb == nil {
			continue
		}
		cb(c, summary)
	}
}

// RegisterOnCancel registers callbacks for cancelled sessions.
func (s *Sensor) RegisterOnCancel(callback ...func(types.ComponentMetadata, types.SessionSummary)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnCancel = append(s.OnCancel, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnCancel invokes callbacks for cancelled sessions.
func (s *Sensor) InvokeOnCancel(c types.ComponentMetadata, summary types.SessionSummary) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCancel) {
		if cb == nil {
			continue
		}
		cb(c, summary)
	}
}

// RegisterOnError registers callbacks for errors.
func (s *Sensor) RegisterOnError(callback ...func(types.ComponentMetadata, error)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnError = append(s.OnError, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnError invokes callbacks for errors.
func (s *Sensor) InvokeOnError(c types.ComponentMetadata, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnError) {
		if cb == nil {
			continue
		}
		cb(c, err)
	}
}
