package websocketclient

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSSettings configures wss:// connections.
type TLSSettings struct {
	CAFile     string
	CertFile   string
	KeyFile    string
	ServerName string
	MinVersion uint16
}

func buildTLSClientConfig(s TLSSettings) (*tls.Config, error) {
	minVersion := s.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}
	tlsConf := &tls.Config{MinVersion: minVersion, ServerName: s.ServerName}

	if s.CertFile != "" || s.KeyFile != "" {
		if s.CertFile == "" || s.KeyFile == "" {
			return nil, fmt.Errorf("both CertFile and KeyFile are required for client certs")
		}
		cert, err := tls.LoadX509KeyPair(s.CertFile, s.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate/key: %w", err)
		}
		tlsConf.Certificates = []tls.Certificate{cert}
	}

	if s.CAFile != "" {
		caData, err := os.ReadFile(s.CAFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caData) {
			return nil, fmt.Errorf("failed to parse CA certificate(s) in %s", s.CAFile)
		}
		tlsConf.RootCAs = pool
	}
	return tlsConf, nil
}
