package httpclient

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// SetTLSPinnedCertificate accepts only servers whose verified chain contains the PEM certificate
// at certPath.
func (hp *HTTPClientAdapter) SetTLSPinnedCertificate(certPath string) error {
	cert, err := loadCertificate(certPath)
	if err != nil {
		hp.notifyHTTPClientError(err)
		hp.NotifyLoggers(types.ErrorLevel, "SetTLSPinnedCertificate: failed",
			"component", hp.componentMetadata, "event", "tls_pinning", "result", "FAILURE",
			"cert_path", certPath, "error", err)
		return err
	}

	hp.configLock.Lock()
	defer hp.configLock.Unlock()
	hp.pinnedCert = cert
	hp.pinEnabled = true
	hp.httpClient.Transport = &http.Transport{TLSClientConfig: &tls.Config{VerifyPeerCertificate: hp.verifyServerCertificate}}
	return nil
}

func (hp *HTTPClientAdapter) verifyServerCertificate(_ [][]byte, verifiedChains [][]*x509.Certificate) error {
	hp.configLock.Lock()
	enabled := hp.pinEnabled
	pinned := append([]byte(nil), hp.pinnedCert...)
	hp.configLock.Unlock()

	if !enabled {
		return nil
	}
	for _, chain := range verifiedChains {
		for _, cert := range chain {
			if bytes.Equal(cert.Raw, pinned) {
				return nil
			}
		}
	}
	return errors.New("TLS certificate pinning check failed")
}

func loadCertificate(certPath string) ([]byte, error) {
	certData, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file: %w", err)
	}
	block, _ := pem.Decode(certData)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block containing the certificate")
	}
	return block.Bytes, nil
}
