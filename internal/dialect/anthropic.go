package dialect

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"llmbridge/internal/core"
)

const anthropicAPIVersion = "2023-06-01"

// anthropicRequest is the Anthropic Messages API request body.
type anthropicRequest struct {
	Model       string         `json:"model"`
	Messages    []core.Message `json:"messages"`
	MaxTokens   int            `json:"max_tokens"`
	System      string         `json:"system,omitempty"`
	Temperature *float64       `json:"temperature,omitempty"`
	Stream      bool           `json:"stream"`
}

func buildAnthropic(messages []core.Message, settings core.Settings, provider core.ProviderConfig, stream bool) (core.RequestSpec, error) {
	// Anthropic rejects system-role messages in the conversation; they go in
	// the top-level system field.
	system, rest := splitSystem(messages)

	body, err := json.Marshal(anthropicRequest{
		Model:       settings.ModelID,
		Messages:    rest,
		MaxTokens:   settings.MaxTokens,
		System:      system,
		Temperature: settings.Temperature,
		Stream:      stream,
	})
	if err != nil {
		return core.RequestSpec{}, err
	}

	headers := map[string]string{
		"Content-Type":      "application/json",
		"anthropic-version": anthropicAPIVersion,
	}
	if settings.ActiveAPIKey != "" {
		headers["x-api-key"] = settings.ActiveAPIKey
	}

	return core.RequestSpec{
		URL:     strings.TrimRight(settings.BaseURL, "/") + "/v1/messages",
		Headers: headers,
		Body:    body,
	}, nil
}

func extractAnthropic(body []byte) string {
	return gjson.GetBytes(body, "content.0.text").String()
}

func anthropicEvent(data []byte) (delta, replace string) {
	if gjson.GetBytes(data, "type").String() != "content_block_delta" {
		return "", ""
	}
	return gjson.GetBytes(data, "delta.text").String(), ""
}
