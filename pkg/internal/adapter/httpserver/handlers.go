package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/npulse/pkg/internal/analyzer"
	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

var errRemoteDisabled = errors.New("remote sources are disabled")

type analyzeRequest struct {
	Source string `json:"source"`
}

type analyzeResponse struct {
	Result types.AnalysisResult `json:"result"`
	Text   string               `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *HTTPServerAdapter) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.notifyServerError(r.Method+" "+r.URL.Path, err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *HTTPServerAdapter) handleFiles(w http.ResponseWriter, r *http.Request) {
	infos, err := capture.List(h.saveDir)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	if infos == nil {
		infos = []capture.Info{}
	}
	writeJSON(w, http.StatusOK, infos)
}

// resolveSource maps a requested source to what the loader may read. Local sources must name a
// capture listed under saveDir, by file name or by its listed path. http(s) URLs need
// remoteSources.
func (h *HTTPServerAdapter) resolveSource(source string) (string, error) {
	switch {
	case strings.HasPrefix(source, "s3://"):
		return source, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		if !h.remoteSources {
			return "", errRemoteDisabled
		}
		return source, nil
	}

	if !capture.IsCaptureName(filepath.Base(source)) {
		return "", fmt.Errorf("%w: %s", types.ErrResourceNotFound, source)
	}
	infos, err := capture.List(h.saveDir)
	if err != nil {
		return "", err
	}
	cleaned := filepath.Clean(source)
	for _, info := range infos {
		if source == info.Name || cleaned == filepath.Clean(info.Path) {
			return info.Path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", types.ErrResourceNotFound, source)
}

// handleAnalyze analyses {"source": "..."}: a saved capture, an s3:// URI or, when enabled, an
// http(s) URL.
func (h *HTTPServerAdapter) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if h.analyzer == nil || h.loader == nil {
		h.fail(w, r, http.StatusNotImplemented, errors.New("analysis is not configured"))
		return
	}
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType != "application/json" {
		h.fail(w, r, http.StatusUnsupportedMediaType, errors.New("expected application/json"))
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody)).Decode(&req); err != nil || req.Source == "" {
		h.fail(w, r, http.StatusBadRequest, errors.New(`expected {"source": "..."}`))
		return
	}

	resolved, err := h.resolveSource(req.Source)
	if err != nil {
		h.failSource(w, r, err)
		return
	}
	records, err := h.loader.Load(r.Context(), resolved)
	if err != nil {
		h.failSource(w, r, err)
		return
	}

	result := h.analyzer.Analyze(records)
	result.Source = req.Source
	writeJSON(w, http.StatusOK, analyzeResponse{Result: result, Text: analyzer.FormatSummary(result)})
}

func (h *HTTPServerAdapter) failSource(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, types.ErrResourceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errRemoteDisabled):
		status = http.StatusForbidden
	}
	h.fail(w, r, status, err)
}
