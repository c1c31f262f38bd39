package httpserver

import (
	"errors"
	"fmt"
	"net/http"
)

// handleStream writes accepted records as server-sent events until the client leaves or the
// update source closes.
func (h *HTTPServerAdapter) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.fail(w, r, http.StatusInternalServerError, errors.New("streaming unsupported"))
		return
	}
	sub := h.hub.subscribe()
	defer h.hub.unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case u, ok := <-sub:
			if !ok {
				fmt.Fprint(w, "event: end\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			fmt.Fprintf(w, "event: record\ndata: {\"count\":%d,\"c1\":%d,\"c2\":%d,\"c3\":%d}\n\n",
				u.Count, u.Record.C1, u.Record.C2, u.Record.C3)
			flusher.Flush()
		}
	}
}
