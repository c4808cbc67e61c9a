// Package transport executes built RequestSpecs against vendor endpoints.
// Non-streaming calls retry transient failures with exponential backoff;
// streaming calls never retry, since partial output may already have been
// consumed.
package transport

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"llmbridge/internal/core"
	"llmbridge/internal/httpclient"
	"llmbridge/internal/metrics"
)

// Transport performs HTTP calls for the gateway. It holds no per-call state
// and is safe for concurrent use.
type Transport struct {
	httpClient *http.Client
	maxRetries uint64
}

// New creates a Transport with the default HTTP client.
func New() *Transport {
	return NewWithHTTPClient(httpclient.NewDefault())
}

// NewWithHTTPClient creates a Transport around a custom HTTP client.
// If httpClient is nil, the default client is used.
func NewWithHTTPClient(httpClient *http.Client) *Transport {
	if httpClient == nil {
		httpClient = httpclient.NewDefault()
	}
	return &Transport{
		httpClient: httpClient,
		maxRetries: 2,
	}
}

// Do performs a non-streaming call and returns the response body, retrying
// rate limits and transient upstream failures. provider is used only for
// error attribution.
func (t *Transport) Do(ctx context.Context, provider string, spec core.RequestSpec) ([]byte, error) {
	var body []byte

	operation := func() error {
		resp, err := t.send(ctx, spec)
		if err != nil {
			return backoff.Permanent(core.NewNetworkError(provider, err.Error(), err))
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(core.NewNetworkError(provider, "failed to read response: "+err.Error(), err))
		}
		raw = decompress(raw, resp.Header.Get("Content-Encoding"))

		if resp.StatusCode/100 != 2 {
			vendorErr := core.ParseVendorError(provider, resp.StatusCode, raw)
			if isRetryable(resp.StatusCode) {
				metrics.RetriesTotal.WithLabelValues(provider).Inc()
				slog.Debug("retrying vendor request",
					"provider", provider,
					"status", resp.StatusCode,
				)
				return vendorErr
			}
			return backoff.Permanent(vendorErr)
		}

		body = raw
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), t.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// DoStream performs a streaming call and returns the response body for the
// caller to decode and close. No retries: a replayed stream could duplicate
// text the caller already saw.
func (t *Transport) DoStream(ctx context.Context, provider string, spec core.RequestSpec) (io.ReadCloser, error) {
	resp, err := t.send(ctx, spec)
	if err != nil {
		return nil, core.NewNetworkError(provider, err.Error(), err)
	}

	if resp.StatusCode/100 != 2 {
		raw, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			raw = nil
		}
		_ = resp.Body.Close()
		raw = decompress(raw, resp.Header.Get("Content-Encoding"))
		return nil, core.ParseVendorError(provider, resp.StatusCode, raw)
	}

	return resp.Body, nil
}

func (t *Transport) send(ctx context.Context, spec core.RequestSpec) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, spec.URL, bytes.NewReader(spec.Body))
	if err != nil {
		return nil, err
	}
	for key, value := range spec.Headers {
		req.Header.Set(key, value)
	}
	if requestID := core.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	return t.httpClient.Do(req)
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 30 * time.Second
	return b
}

// isRetryable reports whether the status code is worth another attempt.
func isRetryable(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
