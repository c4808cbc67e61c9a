package catalog

import "llmbridge/internal/core"

// descriptors holds the built-in model table: well-known model ids with their
// owning provider and any per-model overrides. Models absent from this table
// still resolve through ProviderForModel's name heuristics.
var descriptors = map[string]core.ModelDescriptor{
	"claude-sonnet-4-5": {
		ID:         "claude-sonnet-4-5",
		ProviderID: "anthropic",
	},
	"claude-opus-4-1": {
		ID:         "claude-opus-4-1",
		ProviderID: "anthropic",
	},
	"claude-haiku-4-5": {
		ID:         "claude-haiku-4-5",
		ProviderID: "anthropic",
	},
	"gpt-4o": {
		ID:         "gpt-4o",
		ProviderID: "openai",
	},
	"gpt-4o-mini": {
		ID:         "gpt-4o-mini",
		ProviderID: "openai",
	},
	"gpt-4-turbo": {
		ID:         "gpt-4-turbo",
		ProviderID: "openai",
	},
	"gpt-3.5-turbo": {
		ID:         "gpt-3.5-turbo",
		ProviderID: "openai",
	},
	"o1": {
		ID:         "o1",
		ProviderID: "openai",
	},
	"o3-mini": {
		ID:         "o3-mini",
		ProviderID: "openai",
	},
	"gpt-5": {
		ID:              "gpt-5",
		ProviderID:      "openai",
		DialectOverride: core.DialectOpenAIResponses,
	},
	"gpt-5-mini": {
		ID:              "gpt-5-mini",
		ProviderID:      "openai",
		DialectOverride: core.DialectOpenAIResponses,
	},
	"gpt-5-nano": {
		ID:              "gpt-5-nano",
		ProviderID:      "openai",
		DialectOverride: core.DialectOpenAIResponses,
	},
	"gemini-2.5-pro": {
		ID:         "gemini-2.5-pro",
		ProviderID: "google",
	},
	"gemini-2.5-flash": {
		ID:         "gemini-2.5-flash",
		ProviderID: "google",
	},
	"minimax-m2": {
		ID:         "minimax-m2",
		ProviderID: "minimax",
	},
}

// LookupModel returns the descriptor for a known model id.
func LookupModel(modelID string) (core.ModelDescriptor, bool) {
	desc, ok := descriptors[modelID]
	return desc, ok
}

// DefaultBaseURL returns the base URL a model uses out of the box: the
// descriptor's own URL when set, otherwise its provider's default.
func DefaultBaseURL(modelID string) string {
	if desc, ok := LookupModel(modelID); ok && desc.BaseURL != "" {
		return desc.BaseURL
	}
	return ProviderForModel(modelID).BaseURL
}
