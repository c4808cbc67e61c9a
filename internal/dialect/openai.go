package dialect

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"llmbridge/internal/catalog"
	"llmbridge/internal/core"
)

// chatRequest is the OpenAI Chat Completions request body. MaxTokens and
// MaxCompletionTokens are both pointers because the field name depends on the
// model generation; exactly one is set.
type chatRequest struct {
	Model               string         `json:"model"`
	Messages            []core.Message `json:"messages"`
	MaxTokens           *int           `json:"max_tokens,omitempty"`
	MaxCompletionTokens *int           `json:"max_completion_tokens,omitempty"`
	Temperature         *float64       `json:"temperature,omitempty"`
	Stream              bool           `json:"stream"`
}

func buildOpenAIChat(messages []core.Message, settings core.Settings, provider core.ProviderConfig, stream bool) (core.RequestSpec, error) {
	req := chatRequest{
		Model:    settings.ModelID,
		Messages: messages,
		Stream:   stream,
	}

	// Legacy generations still take max_tokens; everything newer switched to
	// max_completion_tokens.
	limit := settings.MaxTokens
	if catalog.IsLegacyOpenAIModel(settings.ModelID) {
		req.MaxTokens = &limit
	} else {
		req.MaxCompletionTokens = &limit
	}

	// Reasoning models reject any temperature other than the default, so the
	// field is omitted entirely for them.
	if settings.Temperature != nil && !catalog.IsReasoningModel(settings.ModelID) {
		req.Temperature = settings.Temperature
	}

	body, err := json.Marshal(req)
	if err != nil {
		return core.RequestSpec{}, err
	}

	return core.RequestSpec{
		URL:     chatEndpoint(settings.BaseURL, "/chat/completions"),
		Headers: openAIHeaders(settings),
		Body:    body,
	}, nil
}

// openAIHeaders builds the bearer auth header plus the optional organization
// and project scoping headers.
func openAIHeaders(settings core.Settings) map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if settings.ActiveAPIKey != "" {
		headers["Authorization"] = "Bearer " + settings.ActiveAPIKey
	}
	if settings.OrganizationID != "" {
		headers["OpenAI-Organization"] = settings.OrganizationID
	}
	if settings.ProjectID != "" {
		headers["OpenAI-Project"] = settings.ProjectID
	}
	return headers
}

func extractOpenAIChat(body []byte) string {
	return gjson.GetBytes(body, "choices.0.message.content").String()
}

func openAIChatEvent(data []byte) (delta, replace string) {
	return gjson.GetBytes(data, "choices.0.delta.content").String(), ""
}
