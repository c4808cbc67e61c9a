// Package gateway is the call surface of llmbridge: it selects the dialect
// codec for the active model, performs the HTTP exchange, and returns the
// generated text. Every operation takes Settings by value and holds no state
// between calls beyond the immutable catalog.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"llmbridge/internal/catalog"
	"llmbridge/internal/core"
	"llmbridge/internal/credentials"
	"llmbridge/internal/dialect"
	"llmbridge/internal/metrics"
	"llmbridge/internal/probe"
	"llmbridge/internal/transport"
)

// Gateway dispatches chat calls to vendor endpoints. Safe for concurrent use;
// independent calls share nothing but the transport's connection pool.
type Gateway struct {
	transport *transport.Transport
	probe     *probe.Probe
}

// New creates a Gateway with the default transport.
func New() *Gateway {
	return NewWithHTTPClient(nil)
}

// NewWithHTTPClient creates a Gateway around a custom HTTP client.
// If httpClient is nil, the default client is used.
func NewWithHTTPClient(httpClient *http.Client) *Gateway {
	return &Gateway{
		transport: transport.NewWithHTTPClient(httpClient),
		probe:     probe.NewWithHTTPClient(httpClient),
	}
}

// SendMessage sends the conversation to the active model and returns the
// generated text. When onStream is non-nil the vendor is asked to stream and
// onStream receives the cumulative text after every delta; the final text is
// returned either way. If the stream fails midway, partial text is discarded
// rather than returned as a silently truncated result.
func (g *Gateway) SendMessage(ctx context.Context, messages []core.Message, settings core.Settings, onStream dialect.Sink) (string, error) {
	provider := catalog.ProviderForModel(settings.ModelID)
	codec := dialect.CodecFor(catalog.DialectForModel(settings.ModelID))

	if !credentials.IsConfigured(settings) {
		err := core.NewConfigurationError(provider.ID, "no API key configured for provider")
		g.observe(provider.ID, codec.Dialect, time.Now(), err)
		return "", err
	}

	requestID := uuid.NewString()
	ctx = core.WithRequestID(ctx, requestID)
	start := time.Now()

	slog.Debug("dispatching chat call",
		"request_id", requestID,
		"model", settings.ModelID,
		"provider", provider.ID,
		"dialect", codec.Dialect,
		"stream", onStream != nil,
	)

	spec, err := codec.Build(messages, settings, provider, onStream != nil)
	if err != nil {
		return "", err
	}

	var text string
	if onStream != nil {
		text, err = g.stream(ctx, provider.ID, codec, spec, onStream)
	} else {
		var body []byte
		body, err = g.transport.Do(ctx, provider.ID, spec)
		if err == nil {
			text = codec.Extract(body)
		}
	}

	g.observe(provider.ID, codec.Dialect, start, err)
	if err != nil {
		slog.Warn("chat call failed",
			"request_id", requestID,
			"provider", provider.ID,
			"error", err,
		)
		return "", err
	}
	return text, nil
}

// stream runs the SSE decode loop over the response body. The body is tied to
// ctx through the request, so cancellation unblocks the read and releases the
// connection.
func (g *Gateway) stream(ctx context.Context, providerID string, codec dialect.Codec, spec core.RequestSpec, onStream dialect.Sink) (string, error) {
	body, err := g.transport.DoStream(ctx, providerID, spec)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = body.Close()
	}()

	counted := func(cumulative string) {
		metrics.StreamDeltasTotal.WithLabelValues(string(codec.Dialect)).Inc()
		onStream(cumulative)
	}
	return dialect.DecodeStream(ctx, body, codec.Event, counted)
}

// testPrompt is the minimal conversation used by TestConnection.
var testPrompt = []core.Message{{Role: core.RoleUser, Content: "Hi"}}

// testMaxTokens caps the test completion so the probe stays cheap.
const testMaxTokens = 10

// TestConnection verifies the active settings can reach their provider. It
// never returns an error: every failure path collapses into the result
// string, so callers have a single branch.
func (g *Gateway) TestConnection(ctx context.Context, settings core.Settings) string {
	provider := catalog.ProviderForModel(settings.ModelID)

	if !credentials.IsConfigured(settings) {
		return "No API key configured"
	}

	// Local services are probed for reachability instead of being asked to
	// generate; the configured model may not be pulled yet.
	if catalog.IsLocal(provider.ID) {
		status := g.probe.CheckLocalServiceStatus(ctx, settings.BaseURL)
		if status.Running {
			return "success"
		}
		return "Error: cannot connect to local service, please ensure it is running"
	}

	test := settings
	test.MaxTokens = testMaxTokens
	test.Temperature = nil

	_, err := g.SendMessage(ctx, testPrompt, test, nil)
	if err == nil {
		return "success"
	}

	// Generic aggregator and minimax endpoints sometimes reject the test model
	// while the service itself is healthy; fall back to a reachability check.
	if provider.Dialect == core.DialectOpenAICompatible || provider.Dialect == core.DialectMinimax {
		if status := g.probe.CheckLocalServiceStatus(ctx, settings.BaseURL); status.Running {
			return "success"
		}
	}

	return "Error: " + errorMessage(err)
}

// errorMessage unwraps a GatewayError to its vendor message; other errors
// stringify as-is.
func errorMessage(err error) string {
	var gerr *core.GatewayError
	if errors.As(err, &gerr) {
		return gerr.Message
	}
	return err.Error()
}

// observe records the call outcome in the Prometheus counters.
func (g *Gateway) observe(providerID string, d core.Dialect, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		var gerr *core.GatewayError
		if errors.As(err, &gerr) {
			outcome = string(gerr.Type)
		}
	}
	metrics.RequestsTotal.WithLabelValues(providerID, string(d), outcome).Inc()
	metrics.RequestDuration.WithLabelValues(providerID).Observe(time.Since(start).Seconds())
}
