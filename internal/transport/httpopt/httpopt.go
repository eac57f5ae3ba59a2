// Package httpopt builds the outbound HTTP transports shared by the
// backend clients, carrying the TLS compatibility switches.
package httpopt

import (
	"crypto/tls"
	"net/http"
)

// TLSOptions control certificate verification and compatibility with
// older servers.
type TLSOptions struct {
	// VerifySSL disables certificate verification when false.
	VerifySSL bool
	// LegacyTLS permits TLS renegotiation requested by older servers
	// that do not support secure renegotiation.
	LegacyTLS bool
}

// NewTransport returns an *http.Transport configured per opts.
func NewTransport(opts TLSOptions) *http.Transport {
	tlsCfg := &tls.Config{
		InsecureSkipVerify: !opts.VerifySSL, //nolint:gosec // operator-controlled toggle for self-signed deployments
	}
	if opts.LegacyTLS {
		tlsCfg.Renegotiation = tls.RenegotiateOnceAsClient
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = tlsCfg
	return t
}
