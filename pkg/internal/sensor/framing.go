package sensor

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// RegisterOnRecord registers callbacks for accepted records.
func (s *Sensor) RegisterOnRecord(callback ...func(types.ComponentMetadata, types.Record)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnRecord = append(s.OnRecord, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnRecord invokes callbacks for accepted records.
func (s *Sensor) InvokeOnRecord(c types.ComponentMetadata, rec types.Record) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnRecord) {
		if cb == nil {
			continue
		}
		cb(c, rec)
	}
}

// RegisterOnReject registers callbacks for rejected lines.
func (s *Sensor) RegisterOnReject(callback ...func(types.ComponentMetadata, string, string)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnReject = append(s.OnReject, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnReject invokes callbacks for rejected lines.
func (s *Sensor) InvokeOnReject(c types.ComponentMetadata, line string, reason string) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnReject) {
		if cb == nil {
			continue
		}
		cb(c, line, reason)
	}
}

// RegisterOnObserverDrop registers callbacks for dropped observer updates.
func (s *Sensor) RegisterOnObserverDrop(callback ...func(types.ComponentMetadata, uint64)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnObserverDrop = append(s.OnObserverDrop, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnObserverDrop invokes callbacks for dropped observer updates.
func (s *Sensor) InvokeOnObserverDrop(c types.ComponentMetadata, dropped uint64) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnObserverDrop) {
		if cb == nil {
			continue
		}
		cb(c, dropped)
	}
}
