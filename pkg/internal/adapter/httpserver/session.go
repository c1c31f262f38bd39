package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/analyzer"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type sessionStatus struct {
	State       string          `json:"state"`
	Running     bool            `json:"running"`
	SampleCount int             `json:"sample_count"`
	Last        *sessionOutcome `json:"last,omitempty"`
}

// handleStartSession starts a session in the background. The optional duration query parameter
// takes a Go duration ("30s").
func (h *HTTPServerAdapter) handleStartSession(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		h.fail(w, r, http.StatusNotImplemented, errors.New("acquisition is not configured"))
		return
	}
	duration := h.sessionDuration
	if v := r.URL.Query().Get("duration"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			h.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid duration %q", v))
			return
		}
		duration = d
	}
	if !h.running.CompareAndSwap(false, true) {
		h.fail(w, r, http.StatusConflict, types.ErrSessionActive)
		return
	}

	go h.runSession(h.sessionContext(), duration)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"state":    types.SessionArmed.String(),
		"duration": duration.String(),
	})
}

func (h *HTTPServerAdapter) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		h.fail(w, r, http.StatusNotImplemented, errors.New("acquisition is not configured"))
		return
	}
	status := sessionStatus{
		State:       h.engine.State().String(),
		Running:     h.running.Load(),
		SampleCount: h.engine.SampleCount(),
	}
	h.lastLock.RLock()
	status.Last = h.last
	h.lastLock.RUnlock()
	writeJSON(w, http.StatusOK, status)
}

func (h *HTTPServerAdapter) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		h.fail(w, r, http.StatusNotImplemented, errors.New("acquisition is not configured"))
		return
	}
	if !h.running.Load() {
		h.fail(w, r, http.StatusConflict, errors.New("no session running"))
		return
	}
	h.engine.Cancel()
	writeJSON(w, http.StatusAccepted, map[string]string{"state": "cancelling"})
}

// runSession collects, saves, analyses and runs the hooks. A transport fault keeps the partial
// capture.
func (h *HTTPServerAdapter) runSession(ctx context.Context, duration time.Duration) {
	defer h.running.Store(false)

	records, summary, err := h.engine.Collect(ctx, duration)
	outcome := &sessionOutcome{Summary: summary}
	if err != nil {
		h.NotifyLoggers(types.WarnLevel, "Session ended with error",
			"component", h.componentMetadata, "event", "session", "result", "FAILURE",
			"session", summary.ID, "error", err)
	}

	if len(records) > 0 {
		path, saveErr := h.engine.Save(h.saveDir, h.compression)
		if saveErr != nil {
			h.NotifyLoggers(types.ErrorLevel, "Session save failed",
				"component", h.componentMetadata, "event", "save", "result", "FAILURE", "error", saveErr)
		}
		outcome.Capture = path
	}

	var result types.AnalysisResult
	if h.analyzer != nil && len(records) > 0 {
		result = h.analyzer.Analyze(records)
		result.Source = outcome.Capture
		outcome.Result = &result
		outcome.Text = analyzer.FormatSummary(result)
	}

	h.lastLock.Lock()
	h.last = outcome
	h.lastLock.Unlock()

	for _, hook := range h.hooks {
		hook(ctx, records, summary, result)
	}
}
