package sensor

import "github.com/joeydtaylor/npulse/pkg/internal/types"

// RegisterOnAnalysisComplete registers callbacks for finished analyses.
func (s *Sensor) RegisterOnAnalysisComplete(callback ...func(types.ComponentMetadata, types.AnalysisResult)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnAnalysisComplete = append(s.OnAnalysisComplete, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnAnalysisComplete invokes callbacks for finished analyses.
func (s *Sensor) InvokeOnAnalysisComplete(c types.ComponentMetadata, result types.AnalysisResult) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnAnalysisComplete) {
		if cb == nil {
			continue
		}
		cb(c, result)
	}
}

// RegisterOnChannelSkipped registers callbacks for skipped channels.
func (s *Sensor) RegisterOnChannelSkipped(callback ...func(types.ComponentMetadata, int, string)) {
	if len(callback) == 0 {
		return
	}

	s.callbackLock.Lock()
	s.OnChannelSkipped = append(s.OnChannelSkipped, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnChannelSkipped invokes callbacks for skipped channels.
func (s *Sensor) InvokeOnChannelSkipped(c types.ComponentMetadata, channel int, reason string) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnChannelSkipped) {
		if cb == nil {
			continue
		}
		cb(c, channel, reason)
	}
}
