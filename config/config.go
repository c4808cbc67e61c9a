// Package config bootstraps gateway Settings from the environment. The
// resulting Settings value is owned by the caller; the library never writes
// it back anywhere.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"llmbridge/internal/catalog"
	"llmbridge/internal/core"
)

// Defaults applied when the environment does not say otherwise.
const (
	DefaultModel     = "claude-sonnet-4-5"
	DefaultMaxTokens = 4096
)

// providerKeyEnvs maps provider ids to their conventional API key variables.
var providerKeyEnvs = map[string]string{
	"anthropic":   "ANTHROPIC_API_KEY",
	"openai":      "OPENAI_API_KEY",
	"google":      "GEMINI_API_KEY",
	"minimax":     "MINIMAX_API_KEY",
	"openrouter":  "OPENROUTER_API_KEY",
	"together":    "TOGETHER_API_KEY",
	"groq":        "GROQ_API_KEY",
	"deepseek":    "DEEPSEEK_API_KEY",
	"siliconflow": "SILICONFLOW_API_KEY",
}

// Load reads Settings from environment variables (and a .env file when the
// caller loaded one into the environment first).
func Load() (core.Settings, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LLMBRIDGE_MODEL", DefaultModel)
	v.SetDefault("LLMBRIDGE_MAX_TOKENS", DefaultMaxTokens)

	modelID := v.GetString("LLMBRIDGE_MODEL")

	settings := core.Settings{
		ModelID:        modelID,
		MaxTokens:      v.GetInt("LLMBRIDGE_MAX_TOKENS"),
		ProviderKeys:   make(map[string]string),
		OrganizationID: v.GetString("OPENAI_ORGANIZATION"),
		ProjectID:      v.GetString("OPENAI_PROJECT"),
	}

	for providerID, envName := range providerKeyEnvs {
		if key := strings.TrimSpace(v.GetString(envName)); key != "" {
			settings.ProviderKeys[providerID] = key
		}
	}

	provider := catalog.ProviderForModel(modelID)
	settings.ActiveAPIKey = settings.ProviderKeys[provider.ID]

	settings.BaseURL = v.GetString("LLMBRIDGE_BASE_URL")
	if settings.BaseURL == "" {
		settings.BaseURL = catalog.DefaultBaseURL(modelID)
	}

	if v.IsSet("LLMBRIDGE_TEMPERATURE") {
		temperature := v.GetFloat64("LLMBRIDGE_TEMPERATURE")
		settings.Temperature = &temperature
	}

	return settings, nil
}
