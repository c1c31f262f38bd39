package httpclient

import (
	"encoding/base64"
	"fmt"
	"regexp"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

var headerValuePattern = regexp.MustCompile(`\r|\n`)

// AddHeader sets a header sent with every request. Values containing line breaks are rejected.
func (hp *HTTPClientAdapter) AddHeader(key, value string) error {
	if err := hp.validateHeaderValue(value); err != nil {
		return err
	}
	hp.configLock.Lock()
	hp.headers[key] = value
	hp.configLock.Unlock()
	return nil
}

// SetBasicAuth sets the Authorization header for basic authentication.
func (hp *HTTPClientAdapter) SetBasicAuth(username, password string) error {
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return hp.AddHeader("Authorization", "Basic "+token)
}

func (hp *HTTPClientAdapter) validateHeaderValue(value string) error {
	if headerValuePattern.MatchString(value) {
		err := fmt.Errorf("header contains unsupported character")
		hp.notifyHTTPClientError(err)
		hp.NotifyLoggers(types.ErrorLevel, "AddHeader: invalid header value",
			"component", hp.componentMetadata, "event", "add_header", "result", "FAILURE", "error", err)
		return err
	}
	return nil
}
