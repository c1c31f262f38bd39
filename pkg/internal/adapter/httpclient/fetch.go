package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Fetch GETs url and returns the body. 404 and 410 wrap types.ErrResourceNotFound; other non-2xx
// statuses return *types.HTTPError. Transport errors and 5xx responses are retried up to the
// configured limit.
func (hp *HTTPClientAdapter) Fetch(ctx context.Context, url string) ([]byte, error) {
	hp.configLock.Lock()
	headers := make(map[string]string, len(hp.headers))
	for k, v := range hp.headers {
		headers[k] = v
	}
	retries, delay, timeout := hp.maxRetries, hp.retryDelay, hp.timeout
	hp.configLock.Unlock()

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		body, retry, err := hp.fetchOnce(ctx, url, headers, timeout)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry {
			break
		}
		hp.NotifyLoggers(types.WarnLevel, "Fetch: retrying",
			"component", hp.componentMetadata, "event", "fetch", "result", "RETRY",
			"url", url, "attempt", attempt+1, "error", err)
	}
	return nil, lastErr
}

func (hp *HTTPClientAdapter) fetchOnce(ctx context.Context, url string, headers map[string]string, timeout time.Duration) ([]byte, bool, error) {
	hp.notifyHTTPClientRequestStart()

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		hp.notifyHTTPClientError(err)
		return nil, false, &types.HTTPError{StatusCode: 0, Err: err, Message: "failed to create HTTP request"}
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := hp.httpClient.Do(req)
	if err != nil {
		hp.notifyHTTPClientError(err)
		return nil, ctx.Err() == nil, &types.HTTPError{StatusCode: 0, Err: err, Message: "http request execution failed"}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		err := fmt.Errorf("%w: %s returned %d", types.ErrResourceNotFound, url, resp.StatusCode)
		hp.notifyHTTPClientError(err)
		return nil, false, err
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		err := fmt.Errorf("http request failed with status code: %d", resp.StatusCode)
		hp.notifyHTTPClientError(err)
		return nil, resp.StatusCode >= 500, &types.HTTPError{StatusCode: resp.StatusCode, Err: err, Message: "http request failed with non-success status"}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		hp.notifyHTTPClientError(err)
		return nil, true, err
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		text, err := ExtractText(bytes.NewReader(raw))
		if err != nil {
			hp.notifyHTTPClientError(err)
			return nil, false, errors.Join(errors.New("html decode failed"), err)
		}
		raw = []byte(text)
	}

	hp.notifyHTTPClientRequestComplete(url, len(raw))
	return raw, false, nil
}
