// Package credentials maps the active model selection to the active provider
// credential. It mutates only the Settings value handed to it; the host owns
// persistence.
package credentials

import (
	"log/slog"

	"llmbridge/internal/catalog"
	"llmbridge/internal/core"
)

// SwitchModel moves settings to a new active model. The outgoing provider's
// key is stashed in ProviderKeys before the switch, the new provider's stored
// key (if any) becomes active, and the base URL is rewritten to the new
// model's default only when it still equals the previous model's default.
//
// The base URL check is a heuristic, not a true "user override" flag: a
// user-chosen URL that happens to equal the old default is rewritten too.
func SwitchModel(settings *core.Settings, newModelID string) {
	oldProvider := catalog.ProviderForModel(settings.ModelID)
	newProvider := catalog.ProviderForModel(newModelID)

	if settings.ProviderKeys == nil {
		settings.ProviderKeys = make(map[string]string)
	}

	if settings.ActiveAPIKey != "" {
		settings.ProviderKeys[oldProvider.ID] = settings.ActiveAPIKey
	}
	settings.ActiveAPIKey = settings.ProviderKeys[newProvider.ID]

	if settings.BaseURL == catalog.DefaultBaseURL(settings.ModelID) {
		settings.BaseURL = catalog.DefaultBaseURL(newModelID)
	}

	slog.Debug("switched active model",
		"from", settings.ModelID,
		"to", newModelID,
		"provider", newProvider.ID,
		"has_key", settings.ActiveAPIKey != "",
	)

	settings.ModelID = newModelID
}

// IsConfigured reports whether the settings carry enough credential for the
// active model's provider: providers with no auth always pass, everything
// else needs a non-empty active key.
func IsConfigured(settings core.Settings) bool {
	provider := catalog.ProviderForModel(settings.ModelID)
	if provider.AuthType == core.AuthNone {
		return true
	}
	return settings.ActiveAPIKey != ""
}
