package dialect

import (
	"encoding/json"
	"strings"

	"llmbridge/internal/core"
)

// compatRequest is the plain chat-completions body used by OpenAI-compatible
// and Minimax services. Unlike the official OpenAI dialect these always take
// max_tokens and always accept temperature.
type compatRequest struct {
	Model       string         `json:"model"`
	Messages    []core.Message `json:"messages"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature *float64       `json:"temperature,omitempty"`
	Stream      bool           `json:"stream"`
}

// buildOpenAICompatible targets generic local/aggregator services. The auth
// header follows the provider preset's configured auth type rather than a
// fixed scheme.
func buildOpenAICompatible(messages []core.Message, settings core.Settings, provider core.ProviderConfig, stream bool) (core.RequestSpec, error) {
	body, err := json.Marshal(compatRequest{
		Model:       settings.ModelID,
		Messages:    messages,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
		Stream:      stream,
	})
	if err != nil {
		return core.RequestSpec{}, err
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if settings.ActiveAPIKey != "" {
		switch provider.AuthType {
		case core.AuthBearer:
			headers["Authorization"] = "Bearer " + settings.ActiveAPIKey
		case core.AuthAPIKey:
			headers["x-api-key"] = settings.ActiveAPIKey
		}
	}

	return core.RequestSpec{
		URL:     chatEndpoint(settings.BaseURL, "/chat/completions"),
		Headers: headers,
		Body:    body,
	}, nil
}

func buildMinimax(messages []core.Message, settings core.Settings, provider core.ProviderConfig, stream bool) (core.RequestSpec, error) {
	body, err := json.Marshal(compatRequest{
		Model:       settings.ModelID,
		Messages:    messages,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
		Stream:      stream,
	})
	if err != nil {
		return core.RequestSpec{}, err
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if settings.ActiveAPIKey != "" {
		headers["Authorization"] = "Bearer " + settings.ActiveAPIKey
	}

	return core.RequestSpec{
		URL:     strings.TrimRight(settings.BaseURL, "/") + "/v1/text/chatcompletion_v2",
		Headers: headers,
		Body:    body,
	}, nil
}
