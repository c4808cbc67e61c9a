package dialect

import (
	"encoding/json"
	"strings"
	"testing"

	"llmbridge/internal/core"
)

func openAISettings(model string) core.Settings {
	return core.Settings{
		ModelID:      model,
		ActiveAPIKey: "sk-test",
		BaseURL:      "https://api.openai.com",
		MaxTokens:    256,
	}
}

func buildChatBody(t *testing.T, settings core.Settings) map[string]json.RawMessage {
	t.Helper()
	spec, err := buildOpenAIChat([]core.Message{{Role: core.RoleUser, Content: "Hi"}}, settings, core.ProviderConfig{}, false)
	if err != nil {
		t.Fatalf("buildOpenAIChat() error = %v", err)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(spec.Body, &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	return body
}

func TestBuildOpenAIChat_TokenFieldByGeneration(t *testing.T) {
	tests := []struct {
		model      string
		wantField  string
		omitsField string
	}{
		{"gpt-3.5-turbo", "max_tokens", "max_completion_tokens"},
		{"gpt-4", "max_tokens", "max_completion_tokens"},
		{"gpt-4-0613", "max_tokens", "max_completion_tokens"},
		{"gpt-4o", "max_completion_tokens", "max_tokens"},
		{"gpt-4-turbo", "max_completion_tokens", "max_tokens"},
		{"o1-preview", "max_completion_tokens", "max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			body := buildChatBody(t, openAISettings(tt.model))
			if _, ok := body[tt.wantField]; !ok {
				t.Errorf("body missing %q", tt.wantField)
			}
			if _, ok := body[tt.omitsField]; ok {
				t.Errorf("body contains %q, must be absent", tt.omitsField)
			}
		})
	}
}

func TestBuildOpenAIChat_TemperatureOmittedForReasoningModels(t *testing.T) {
	temperature := 0.7

	for _, model := range []string{"o1", "o1-mini", "o3-mini"} {
		t.Run(model, func(t *testing.T) {
			settings := openAISettings(model)
			settings.Temperature = &temperature
			body := buildChatBody(t, settings)
			if _, ok := body["temperature"]; ok {
				t.Error("temperature present for reasoning model")
			}
		})
	}

	settings := openAISettings("gpt-4o")
	settings.Temperature = &temperature
	body := buildChatBody(t, settings)
	if _, ok := body["temperature"]; !ok {
		t.Error("temperature missing for regular model")
	}
}

func TestBuildOpenAIChat_Headers(t *testing.T) {
	settings := openAISettings("gpt-4o")
	settings.OrganizationID = "org-123"
	settings.ProjectID = "proj-456"

	spec, err := buildOpenAIChat([]core.Message{{Role: core.RoleUser, Content: "Hi"}}, settings, core.ProviderConfig{}, false)
	if err != nil {
		t.Fatal(err)
	}

	if spec.Headers["Authorization"] != "Bearer sk-test" {
		t.Errorf("Authorization = %q", spec.Headers["Authorization"])
	}
	if spec.Headers["OpenAI-Organization"] != "org-123" {
		t.Errorf("OpenAI-Organization = %q", spec.Headers["OpenAI-Organization"])
	}
	if spec.Headers["OpenAI-Project"] != "proj-456" {
		t.Errorf("OpenAI-Project = %q", spec.Headers["OpenAI-Project"])
	}
	if !strings.HasSuffix(spec.URL, "/v1/chat/completions") {
		t.Errorf("URL = %q", spec.URL)
	}
}

func TestExtractOpenAIChat(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"role":"assistant","content":"Hello!"}}]}`)
	if got := extractOpenAIChat(body); got != "Hello!" {
		t.Errorf("extractOpenAIChat() = %q", got)
	}
	if got := extractOpenAIChat([]byte(`{}`)); got != "" {
		t.Errorf("extractOpenAIChat(missing fields) = %q, want empty", got)
	}
}

func TestOpenAIChatEvent(t *testing.T) {
	delta, replace := openAIChatEvent([]byte(`{"choices":[{"delta":{"content":"chunk"}}]}`))
	if delta != "chunk" || replace != "" {
		t.Errorf("delta = %q, replace = %q", delta, replace)
	}
}
