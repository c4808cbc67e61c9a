package dialect

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"llmbridge/internal/core"
)

// googleContent is one turn in the Gemini generateContent request.
type googleContent struct {
	Role  string       `json:"role"`
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

// googleRequest is the Gemini generateContent request body.
type googleRequest struct {
	Contents         []googleContent `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

func buildGoogle(messages []core.Message, settings core.Settings, provider core.ProviderConfig, stream bool) (core.RequestSpec, error) {
	var req googleRequest
	req.Contents = make([]googleContent, 0, len(messages))
	for _, msg := range messages {
		// Gemini knows only user and model roles.
		role := core.RoleUser
		if msg.Role == core.RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, googleContent{
			Role:  role,
			Parts: []googlePart{{Text: msg.Content}},
		})
	}
	req.GenerationConfig.MaxOutputTokens = settings.MaxTokens

	body, err := json.Marshal(req)
	if err != nil {
		return core.RequestSpec{}, err
	}

	// The key travels as a query parameter; Gemini has no auth header in this
	// scheme. Streaming uses a distinct action with alt=sse to get SSE framing.
	base := strings.TrimRight(settings.BaseURL, "/")
	action := "generateContent"
	query := url.Values{}
	if stream {
		action = "streamGenerateContent"
		query.Set("alt", "sse")
	}
	query.Set("key", settings.ActiveAPIKey)

	return core.RequestSpec{
		URL:     base + "/v1beta/models/" + settings.ModelID + ":" + action + "?" + query.Encode(),
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	}, nil
}

func extractGoogle(body []byte) string {
	return gjson.GetBytes(body, "candidates.0.content.parts.0.text").String()
}

func googleEvent(data []byte) (delta, replace string) {
	parts := gjson.GetBytes(data, "candidates.0.content.parts")
	if !parts.IsArray() {
		return "", ""
	}
	var sb strings.Builder
	parts.ForEach(func(_, part gjson.Result) bool {
		sb.WriteString(part.Get("text").String())
		return true
	})
	return sb.String(), ""
}
