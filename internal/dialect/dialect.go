// Package dialect implements the vendor protocol variants: request building,
// non-streaming text extraction, and SSE delta decoding. Each dialect is a
// Codec value over pure functions; there is no provider class hierarchy and
// no state beyond the arguments of a call.
package dialect

import (
	"strings"

	"llmbridge/internal/core"
)

// BuildFunc assembles the HTTP request for one call: URL, headers and body,
// with every dialect quirk (auth placement, token field naming, role
// remapping) already applied.
type BuildFunc func(messages []core.Message, settings core.Settings, provider core.ProviderConfig, stream bool) (core.RequestSpec, error)

// ExtractFunc pulls the final text out of a non-streaming JSON response.
// Missing fields resolve to empty string, never an error.
type ExtractFunc func(body []byte) string

// EventFunc inspects one decoded SSE JSON payload. It returns text to append
// to the accumulated output, and optionally a full replacement for it (the
// Responses dialect re-emits the complete text on response.completed).
type EventFunc func(data []byte) (delta, replace string)

// Codec bundles the three protocol functions for one dialect.
type Codec struct {
	Dialect core.Dialect
	Build   BuildFunc
	Extract ExtractFunc
	Event   EventFunc
}

// CodecFor returns the codec for a dialect. The set is closed; anything
// unrecognized is treated as anthropic, matching the catalog's permissive
// provider fallback.
func CodecFor(d core.Dialect) Codec {
	switch d {
	case core.DialectOpenAIChat:
		return Codec{Dialect: d, Build: buildOpenAIChat, Extract: extractOpenAIChat, Event: openAIChatEvent}
	case core.DialectOpenAIResponses:
		return Codec{Dialect: d, Build: buildOpenAIResponses, Extract: extractOpenAIResponses, Event: openAIResponsesEvent}
	case core.DialectGoogle:
		return Codec{Dialect: d, Build: buildGoogle, Extract: extractGoogle, Event: googleEvent}
	case core.DialectMinimax:
		return Codec{Dialect: d, Build: buildMinimax, Extract: extractOpenAIChat, Event: openAIChatEvent}
	case core.DialectOpenAICompatible:
		return Codec{Dialect: d, Build: buildOpenAICompatible, Extract: extractOpenAIChat, Event: openAIChatEvent}
	default:
		return Codec{Dialect: core.DialectAnthropic, Build: buildAnthropic, Extract: extractAnthropic, Event: anthropicEvent}
	}
}

// chatEndpoint normalizes a base URL into an OpenAI-style endpoint: the
// trailing slash is stripped and an existing /v1 suffix is not duplicated.
func chatEndpoint(baseURL, suffix string) string {
	base := strings.TrimRight(baseURL, "/")
	if strings.HasSuffix(base, "/v1") {
		return base + suffix
	}
	return base + "/v1" + suffix
}

// splitSystem separates any system message from the conversation. The last
// system message wins when several are present.
func splitSystem(messages []core.Message) (system string, rest []core.Message) {
	rest = make([]core.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == core.RoleSystem {
			system = msg.Content
			continue
		}
		rest = append(rest, msg)
	}
	return system, rest
}
