package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, settings.ModelID)
	assert.Equal(t, DefaultMaxTokens, settings.MaxTokens)
	assert.Equal(t, "https://api.anthropic.com", settings.BaseURL)
	assert.Nil(t, settings.Temperature)
}

func TestLoad_ActiveKeyFollowsModelProvider(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-1")
	t.Setenv("OPENAI_API_KEY", "sk-oai-2")
	t.Setenv("LLMBRIDGE_MODEL", "gpt-4o")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-oai-2", settings.ActiveAPIKey)
	assert.Equal(t, "sk-ant-1", settings.ProviderKeys["anthropic"])
	assert.Equal(t, "sk-oai-2", settings.ProviderKeys["openai"])
	assert.Equal(t, "https://api.openai.com", settings.BaseURL)
}

func TestLoad_ExplicitBaseURLWins(t *testing.T) {
	t.Setenv("LLMBRIDGE_MODEL", "llama3:8b")
	t.Setenv("LLMBRIDGE_BASE_URL", "http://remote-box:11434")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://remote-box:11434", settings.BaseURL)
	// Local providers need no key.
	assert.Empty(t, settings.ActiveAPIKey)
}

func TestLoad_Temperature(t *testing.T) {
	t.Setenv("LLMBRIDGE_TEMPERATURE", "0.2")

	settings, err := Load()
	require.NoError(t, err)

	require.NotNil(t, settings.Temperature)
	assert.InDelta(t, 0.2, *settings.Temperature, 1e-9)
}

func TestLoad_BlankKeyIgnored(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "   ")

	settings, err := Load()
	require.NoError(t, err)

	_, ok := settings.ProviderKeys["anthropic"]
	assert.False(t, ok)
	assert.Empty(t, settings.ActiveAPIKey)
}

func TestLoad_MaxTokensOverride(t *testing.T) {
	t.Setenv("LLMBRIDGE_MAX_TOKENS", "512")

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 512, settings.MaxTokens)
}
