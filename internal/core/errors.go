package core

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrorType classifies a gateway failure.
type ErrorType string

const (
	// ErrorTypeNetwork indicates a transport-level failure (DNS, connection
	// refused, timeout).
	ErrorTypeNetwork ErrorType = "network_error"
	// ErrorTypeHTTP indicates a non-2xx response from the vendor.
	ErrorTypeHTTP ErrorType = "http_error"
	// ErrorTypeConfiguration indicates a missing API key for an auth-required
	// provider. Checked before dispatch, never inside adapters.
	ErrorTypeConfiguration ErrorType = "configuration_error"
	// ErrorTypeProtocol classifies a malformed SSE line. The stream decoder
	// recovers these locally, so no GatewayError is ever constructed with this
	// type; the constant completes the classification for callers switching
	// on Type.
	ErrorTypeProtocol ErrorType = "protocol_error"
)

// GatewayError is the error type returned by all gateway operations.
type GatewayError struct {
	Type       ErrorType
	Message    string
	StatusCode int    // set for ErrorTypeHTTP
	Provider   string // provider id when known
	Err        error  // underlying cause, not exposed to callers
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause.
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(provider, message string, err error) *GatewayError {
	return &GatewayError{
		Type:     ErrorTypeNetwork,
		Message:  message,
		Provider: provider,
		Err:      err,
	}
}

// NewConfigurationError reports a missing credential precondition.
func NewConfigurationError(provider, message string) *GatewayError {
	return &GatewayError{
		Type:     ErrorTypeConfiguration,
		Message:  message,
		Provider: provider,
	}
}

// ParseVendorError builds an HTTP error from a vendor error response. The
// message is taken from the vendor's `error.message` envelope field when
// present, else "API error: <status>".
func ParseVendorError(provider string, statusCode int, body []byte) *GatewayError {
	message := gjson.GetBytes(body, "error.message").String()
	if message == "" {
		message = fmt.Sprintf("API error: %d", statusCode)
	}
	return &GatewayError{
		Type:       ErrorTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Provider:   provider,
	}
}
