// Package catalog is the static lookup table of provider presets and model
// descriptors. The data is immutable and loaded once at process start; every
// lookup is a pure function over it.
package catalog

import (
	"strings"

	"llmbridge/internal/core"
)

// presets holds the built-in provider configurations, keyed by provider id.
var presets = map[string]core.ProviderConfig{
	// Official APIs
	"anthropic": {
		ID:          "anthropic",
		DisplayName: "Anthropic",
		BaseURL:     "https://api.anthropic.com",
		Dialect:     core.DialectAnthropic,
		AuthType:    core.AuthAPIKey,
	},
	"openai": {
		ID:          "openai",
		DisplayName: "OpenAI",
		BaseURL:     "https://api.openai.com",
		Dialect:     core.DialectOpenAIChat,
		AuthType:    core.AuthBearer,
	},
	"google": {
		ID:          "google",
		DisplayName: "Google",
		BaseURL:     "https://generativelanguage.googleapis.com",
		Dialect:     core.DialectGoogle,
		AuthType:    core.AuthQueryParam,
	},
	"minimax": {
		ID:          "minimax",
		DisplayName: "Minimax",
		BaseURL:     "https://api.minimax.chat",
		Dialect:     core.DialectMinimax,
		AuthType:    core.AuthBearer,
	},

	// Local inference services
	"ollama": {
		ID:          "ollama",
		DisplayName: "Ollama",
		BaseURL:     "http://localhost:11434",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthNone,
	},
	"lm-studio": {
		ID:          "lm-studio",
		DisplayName: "LM Studio",
		BaseURL:     "http://localhost:1234",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthNone,
	},
	"localai": {
		ID:          "localai",
		DisplayName: "LocalAI",
		BaseURL:     "http://localhost:8080",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthNone,
	},

	// Self-hosted GPU inference
	"vllm": {
		ID:          "vllm",
		DisplayName: "vLLM",
		BaseURL:     "http://localhost:8000",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthNone,
	},
	"tgi": {
		ID:          "tgi",
		DisplayName: "TGI",
		BaseURL:     "http://localhost:8080",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthNone,
	},
	"sglang": {
		ID:          "sglang",
		DisplayName: "SGLang",
		BaseURL:     "http://localhost:30000",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthNone,
	},

	// API aggregation services
	"openrouter": {
		ID:          "openrouter",
		DisplayName: "OpenRouter",
		BaseURL:     "https://openrouter.ai/api/v1",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthBearer,
	},
	"together": {
		ID:          "together",
		DisplayName: "Together AI",
		BaseURL:     "https://api.together.xyz/v1",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthBearer,
	},
	"groq": {
		ID:          "groq",
		DisplayName: "Groq",
		BaseURL:     "https://api.groq.com/openai/v1",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthBearer,
	},
	"deepseek": {
		ID:          "deepseek",
		DisplayName: "DeepSeek",
		BaseURL:     "https://api.deepseek.com",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthBearer,
	},
	"siliconflow": {
		ID:          "siliconflow",
		DisplayName: "SiliconFlow",
		BaseURL:     "https://api.siliconflow.cn/v1",
		Dialect:     core.DialectOpenAICompatible,
		AuthType:    core.AuthBearer,
	},
}

// localProviders are the presets that point at local inference services.
// They never require an API key and are probed for reachability instead of
// being exercised with a chat call.
var localProviders = map[string]bool{
	"ollama":    true,
	"lm-studio": true,
	"localai":   true,
	"vllm":      true,
	"tgi":       true,
	"sglang":    true,
}

// Resolve returns the preset for the given provider id. Unknown ids fall back
// to the anthropic preset rather than failing, so unseen provider strings
// from newer hosts keep working.
func Resolve(providerID string) core.ProviderConfig {
	if cfg, ok := presets[providerID]; ok {
		return cfg
	}
	return presets["anthropic"]
}

// Providers returns the ids of all built-in presets.
func Providers() []string {
	ids := make([]string, 0, len(presets))
	for id := range presets {
		ids = append(ids, id)
	}
	return ids
}

// IsLocal reports whether the provider id names a local inference service.
func IsLocal(providerID string) bool {
	return localProviders[providerID]
}

// ProviderForModel infers the owning provider from a model id. Matches the
// inference rules of the desktop host: aggregator-style slash prefixes map to
// openrouter, Ollama tag syntax (name:tag) maps to ollama, then well-known
// vendor name fragments, with anthropic as the final fallback.
func ProviderForModel(modelID string) core.ProviderConfig {
	lower := strings.ToLower(modelID)

	switch {
	case strings.HasPrefix(lower, "anthropic/"),
		strings.HasPrefix(lower, "openai/"),
		strings.HasPrefix(lower, "meta-llama/"),
		strings.HasPrefix(lower, "deepseek/"):
		return Resolve("openrouter")
	case strings.Contains(lower, ":"):
		return Resolve("ollama")
	case strings.Contains(lower, "claude"):
		return Resolve("anthropic")
	case strings.Contains(lower, "gpt"):
		return Resolve("openai")
	case strings.Contains(lower, "gemini"):
		return Resolve("google")
	case strings.Contains(lower, "minimax"):
		return Resolve("minimax")
	default:
		return Resolve("anthropic")
	}
}

// DialectForModel selects the wire dialect for a model: an explicit descriptor
// override wins, then the gpt-5 name pattern (Responses API), then the
// provider preset's dialect.
func DialectForModel(modelID string) core.Dialect {
	if desc, ok := LookupModel(modelID); ok && desc.DialectOverride != "" {
		return desc.DialectOverride
	}
	if UsesResponsesAPI(modelID) {
		return core.DialectOpenAIResponses
	}
	return ProviderForModel(modelID).Dialect
}

// UsesResponsesAPI reports whether the model must be called through the
// OpenAI Responses endpoint instead of Chat Completions.
func UsesResponsesAPI(modelID string) bool {
	if desc, ok := LookupModel(modelID); ok {
		return desc.DialectOverride == core.DialectOpenAIResponses
	}
	return strings.Contains(strings.ToLower(modelID), "gpt-5")
}

// IsReasoningModel reports whether the model rejects a custom temperature
// (o1/o3/gpt-5 families only accept the default of 1).
func IsReasoningModel(modelID string) bool {
	lower := strings.ToLower(modelID)
	return strings.HasPrefix(lower, "o1") || strings.HasPrefix(lower, "o3") ||
		strings.HasPrefix(lower, "gpt-5") ||
		strings.Contains(lower, "-o1") || strings.Contains(lower, "-o3") ||
		strings.Contains(lower, "o1-") || strings.Contains(lower, "o3-")
}

// IsLegacyOpenAIModel reports whether the model is an older OpenAI generation
// that still takes max_tokens instead of max_completion_tokens.
func IsLegacyOpenAIModel(modelID string) bool {
	lower := strings.ToLower(modelID)
	if strings.Contains(lower, "gpt-3.5") {
		return true
	}
	return strings.Contains(lower, "gpt-4") &&
		!strings.Contains(lower, "gpt-4o") &&
		!strings.Contains(lower, "gpt-4-turbo")
}
