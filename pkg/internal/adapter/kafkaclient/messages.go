package kafkaclient

import (
	"encoding/json"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Message kinds carried in the "kind" header.
const (
	KindAnalysis = "analysis"
	KindSession  = "session"
)

// AnalysisMessage encodes result as JSON keyed by its source.
func AnalysisMessage(result types.AnalysisResult) (types.PublishMessage, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return types.PublishMessage{}, err
	}
	return types.PublishMessage{
		Key:     []byte(result.Source),
		Value:   body,
		Headers: map[string]string{"kind": KindAnalysis, "content-type": "application/json"},
	}, nil
}

// SessionMessage encodes summary as JSON keyed by the session id.
func SessionMessage(summary types.SessionSummary) (types.PublishMessage, error) {
	body, err := json.Marshal(summary)
	if err != nil {
		return types.PublishMessage{}, err
	}
	return types.PublishMessage{
		Key:     []byte(summary.ID),
		Value:   body,
		Headers: map[string]string{"kind": KindSession, "content-type": "application/json", "state": summary.State},
	}, nil
}
