package config

import (
	"fmt"
	"slices"
)

// TLS modes accepted by server.tls.mode. An empty mode means TLSDisabled.
const (
	TLSDisabled = "disabled"
	TLSServer   = "server"
	TLSMutual   = "mutual"
)

var (
	clientAuthPolicies = []string{"", "require", "request", "verify"}
	tlsVersions        = []string{"", "1.2", "1.3"}
)

// ValidateTLSConfig checks server.tls after every override has been applied.
func (c *Config) ValidateTLSConfig() error {
	tls := c.Server.TLS

	switch tls.Mode {
	case "", TLSDisabled:
		return nil
	case TLSServer, TLSMutual:
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be '%s', '%s', or '%s')", tls.Mode, TLSDisabled, TLSServer, TLSMutual)
	}

	if !slices.Contains(tlsVersions, tls.MinVersion) {
		return fmt.Errorf("invalid TLS minVersion: %s (must be '1.2' or '1.3')", tls.MinVersion)
	}
	if err := oneSource("certificate", tls.CertFile, tls.CertContent); err != nil {
		return fmt.Errorf("%s mode: %w", tls.Mode, err)
	}
	if err := oneSource("key", tls.KeyFile, tls.KeyContent); err != nil {
		return fmt.Errorf("%s mode: %w", tls.Mode, err)
	}
	if tls.Mode != TLSMutual {
		return nil
	}

	if err := oneSource("CA certificate", tls.CAFile, tls.CAContent); err != nil {
		return fmt.Errorf("mutual mode: %w", err)
	}
	if !slices.Contains(clientAuthPolicies, tls.ClientAuthPolicy) {
		return fmt.Errorf("invalid clientAuthPolicy: %s (must be 'require', 'request', or 'verify')", tls.ClientAuthPolicy)
	}
	return nil
}

// oneSource requires exactly one of a PEM file path or inline PEM content.
func oneSource(what, file, content string) error {
	switch {
	case file == "" && content == "":
		return fmt.Errorf("TLS %s is required (provide a file or content)", what)
	case file != "" && content != "":
		return fmt.Errorf("TLS %s has both a file and content, choose one", what)
	}
	return nil
}
