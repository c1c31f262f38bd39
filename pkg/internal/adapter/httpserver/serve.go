package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Handler returns the API routes. The live stream pump starts on first call.
func (h *HTTPServerAdapter) Handler() http.Handler {
	h.pumpOnce.Do(func() {
		if h.updates != nil {
			go h.hub.pump(h.updates)
		}
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /files", h.handleFiles)
	mux.HandleFunc("POST /analyze", h.handleAnalyze)
	mux.HandleFunc("POST /sessions", h.handleStartSession)
	mux.HandleFunc("GET /sessions/current", h.handleSessionStatus)
	mux.HandleFunc("DELETE /sessions/current", h.handleCancelSession)
	mux.HandleFunc("GET /stream", h.handleStream)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return h.withHeaders(mux)
}

func (h *HTTPServerAdapter) withHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range h.headers {
			w.Header().Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}

// Serve listens until ctx is cancelled. Request contexts derive from ctx, so open streams and
// the running session end with it.
func (h *HTTPServerAdapter) Serve(ctx context.Context) error {
	if h.configErr != nil {
		return h.configErr
	}
	h.serverLock.Lock()
	h.baseCtx = ctx
	srv := &http.Server{
		Addr:              h.address,
		Handler:           h.Handler(),
		ReadHeaderTimeout: h.timeout,
		ReadTimeout:       h.timeout,
		TLSConfig:         h.tlsConfig,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	h.serverLock.Unlock()

	errCh := make(chan error, 1)
	go func() {
		h.NotifyLoggers(types.InfoLevel, "Serving API",
			"component", h.componentMetadata, "event", "serve", "result", "SUCCESS",
			"address", h.address, "tls", h.tlsConfig != nil)
		if h.tlsConfig != nil {
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		if h.engine != nil {
			h.engine.Cancel()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		h.NotifyLoggers(types.InfoLevel, "API stopped",
			"component", h.componentMetadata, "event", "serve", "result", "STOPPED")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.NotifyLoggers(types.ErrorLevel, "API failed",
				"component", h.componentMetadata, "event", "serve", "result", "FAILURE", "error", err)
			return err
		}
		return nil
	}
}

func (h *HTTPServerAdapter) sessionContext() context.Context {
	h.serverLock.Lock()
	defer h.serverLock.Unlock()
	return h.baseCtx
}
