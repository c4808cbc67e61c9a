package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"llmbridge/internal/core"
)

func anthropicSettings(baseURL string) core.Settings {
	return core.Settings{
		ActiveAPIKey: "sk-ant-test",
		ModelID:      "claude-sonnet-4-5",
		BaseURL:      baseURL,
		MaxTokens:    1024,
	}
}

func TestSendMessage_NonStreaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		w.Write([]byte(`{"content":[{"type":"text","text":"Hello!"}]}`))
	}))
	defer server.Close()

	g := New()
	text, err := g.SendMessage(context.Background(),
		[]core.Message{{Role: core.RoleUser, Content: "Hi"}},
		anthropicSettings(server.URL), nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", text)
}

func TestSendMessage_Streaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, gjsonBody(r, "stream").Bool())
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"type\":\"content_block_delta\",\"delta\":{\"text\":\"Hi\"}}\n\n"))
		w.Write([]byte("data: {\"type\":\"content_block_delta\",\"delta\":{\"text\":\" there\"}}\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	var seen []string
	g := New()
	text, err := g.SendMessage(context.Background(),
		[]core.Message{{Role: core.RoleUser, Content: "Hi"}},
		anthropicSettings(server.URL),
		func(cumulative string) { seen = append(seen, cumulative) })
	require.NoError(t, err)
	assert.Equal(t, "Hi there", text)
	assert.Equal(t, []string{"Hi", "Hi there"}, seen)
}

func TestSendMessage_MissingKeyFailsBeforeDispatch(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	settings := anthropicSettings(server.URL)
	settings.ActiveAPIKey = ""

	g := New()
	_, err := g.SendMessage(context.Background(),
		[]core.Message{{Role: core.RoleUser, Content: "Hi"}}, settings, nil)
	require.Error(t, err)

	var gerr *core.GatewayError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, core.ErrorTypeConfiguration, gerr.Type)
	assert.False(t, called, "no HTTP request may be issued without a key")
}

func TestSendMessage_VendorErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"max_tokens is required"}}`))
	}))
	defer server.Close()

	g := New()
	text, err := g.SendMessage(context.Background(),
		[]core.Message{{Role: core.RoleUser, Content: "Hi"}},
		anthropicSettings(server.URL), nil)
	require.Error(t, err)
	assert.Empty(t, text)

	var gerr *core.GatewayError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, "max_tokens is required", gerr.Message)
}

func TestTestConnection_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The test probe must stay cheap.
		assert.EqualValues(t, 10, gjsonBody(r, "max_tokens").Int())
		w.Write([]byte(`{"content":[{"type":"text","text":"Hi!"}]}`))
	}))
	defer server.Close()

	g := New()
	result := g.TestConnection(context.Background(), anthropicSettings(server.URL))
	assert.Equal(t, "success", result)
}

func TestTestConnection_NoKey(t *testing.T) {
	settings := anthropicSettings("https://api.anthropic.com")
	settings.ActiveAPIKey = ""

	g := New()
	assert.Equal(t, "No API key configured", g.TestConnection(context.Background(), settings))
}

func TestTestConnection_VendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	g := New()
	result := g.TestConnection(context.Background(), anthropicSettings(server.URL))
	assert.Equal(t, "Error: invalid x-api-key", result)
}

func TestTestConnection_MinimaxFallsBackToReachability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The chat call fails, but the service answers model discovery.
		if r.URL.Path == "/v1/models" {
			w.Write([]byte(`{"data":[{"id":"minimax-m2"}]}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"unsupported test model"}}`))
	}))
	defer server.Close()

	settings := core.Settings{
		ActiveAPIKey: "mm-key",
		ModelID:      "minimax-m2",
		BaseURL:      server.URL,
		MaxTokens:    1024,
	}

	g := New()
	assert.Equal(t, "success", g.TestConnection(context.Background(), settings))
}

func TestTestConnection_LocalServiceRunning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			w.Write([]byte(`{"data":[{"id":"llama3"}]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	settings := core.Settings{
		ModelID:   "llama3:8b",
		BaseURL:   server.URL,
		MaxTokens: 1024,
	}

	g := New()
	assert.Equal(t, "success", g.TestConnection(context.Background(), settings))
}

func TestTestConnection_LocalServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	settings := core.Settings{
		ModelID:   "llama3:8b",
		BaseURL:   url,
		MaxTokens: 1024,
	}

	g := New()
	result := g.TestConnection(context.Background(), settings)
	assert.Equal(t, "Error: cannot connect to local service, please ensure it is running", result)
}

// gjsonBody parses one field out of the request body.
func gjsonBody(r *http.Request, path string) gjson.Result {
	raw, _ := io.ReadAll(r.Body)
	return gjson.GetBytes(raw, path)
}
