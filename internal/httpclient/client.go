// Package httpclient builds the HTTP clients used for vendor API calls.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// Config holds the transport-level knobs for a vendor API client.
type Config struct {
	// Timeout bounds the whole request, including streaming reads.
	Timeout time.Duration

	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration

	// ResponseHeaderTimeout bounds the wait for response headers; generation
	// output arrives after this point, so it can be long.
	ResponseHeaderTimeout time.Duration

	// TLSHandshakeTimeout bounds the TLS handshake.
	TLSHandshakeTimeout time.Duration

	// MaxIdleConnsPerHost keeps connections warm toward a single vendor host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout closes idle keep-alive connections.
	IdleConnTimeout time.Duration
}

// DefaultConfig matches the request ceilings of the official vendor SDKs:
// ten minutes end to end, which covers long streamed generations.
func DefaultConfig() Config {
	return Config{
		Timeout:               10 * time.Minute,
		DialTimeout:           30 * time.Second,
		ResponseHeaderTimeout: 10 * time.Minute,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
	}
}

// New creates an HTTP client with the given configuration.
func New(cfg Config) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:       cfg.IdleConnTimeout,
			TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
			ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
			ForceAttemptHTTP2:     true,
		},
	}
}

// NewDefault creates an HTTP client with the default configuration.
func NewDefault() *http.Client {
	return New(DefaultConfig())
}
