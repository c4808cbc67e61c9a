package dialect

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"llmbridge/internal/core"
)

// responsesRequest is the OpenAI Responses API request body (gpt-5 family).
type responsesRequest struct {
	Model           string         `json:"model"`
	Input           []core.Message `json:"input"`
	Instructions    string         `json:"instructions,omitempty"`
	MaxOutputTokens int            `json:"max_output_tokens"`
	Temperature     float64        `json:"temperature"`
	Stream          bool           `json:"stream"`
}

func buildOpenAIResponses(messages []core.Message, settings core.Settings, provider core.ProviderConfig, stream bool) (core.RequestSpec, error) {
	// The Responses API has no system role; a system message becomes the
	// top-level instructions field and the rest form the input list.
	instructions, input := splitSystem(messages)

	temperature := 1.0
	if settings.Temperature != nil {
		temperature = *settings.Temperature
	}

	body, err := json.Marshal(responsesRequest{
		Model:           settings.ModelID,
		Input:           input,
		Instructions:    instructions,
		MaxOutputTokens: settings.MaxTokens,
		Temperature:     temperature,
		Stream:          stream,
	})
	if err != nil {
		return core.RequestSpec{}, err
	}

	return core.RequestSpec{
		URL:     chatEndpoint(settings.BaseURL, "/responses"),
		Headers: openAIHeaders(settings),
		Body:    body,
	}, nil
}

// extractOpenAIResponses finds the message entry in the output array and
// returns its output_text content.
func extractOpenAIResponses(body []byte) string {
	return gjson.GetBytes(body, `output.#(type=="message").content.#(type=="output_text").text`).String()
}

func openAIResponsesEvent(data []byte) (delta, replace string) {
	switch gjson.GetBytes(data, "type").String() {
	case "response.output_text.delta":
		return gjson.GetBytes(data, "delta").String(), ""
	case "response.completed":
		// The completed event carries the full response object; its text
		// overrides the accumulated deltas when they under-report.
		full := gjson.GetBytes(data, "response")
		return "", extractOpenAIResponses([]byte(full.Raw))
	default:
		return "", ""
	}
}
