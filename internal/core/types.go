// Package core defines the shared types and errors for the llmbridge gateway.
package core

// Dialect identifies a vendor-specific request/response/streaming protocol
// variant for chat completion.
type Dialect string

const (
	DialectAnthropic        Dialect = "anthropic"
	DialectOpenAIChat       Dialect = "openai-chat"
	DialectOpenAIResponses  Dialect = "openai-responses"
	DialectGoogle           Dialect = "google"
	DialectMinimax          Dialect = "minimax"
	DialectOpenAICompatible Dialect = "openai-compatible"
)

// AuthType identifies how a provider expects credentials to be presented.
type AuthType string

const (
	AuthNone       AuthType = "none"
	AuthBearer     AuthType = "bearer"
	AuthAPIKey     AuthType = "api-key"
	AuthQueryParam AuthType = "query-param"
)

// ProviderConfig is a provider preset: default endpoint, dialect and auth scheme.
type ProviderConfig struct {
	ID          string
	DisplayName string
	BaseURL     string
	Dialect     Dialect
	AuthType    AuthType
}

// ModelDescriptor associates a model id with its provider and optional
// per-model overrides.
type ModelDescriptor struct {
	ID              string
	ProviderID      string
	BaseURL         string  // may differ from the provider default
	DialectOverride Dialect // empty unless the model speaks a different dialect
}

// Settings is the host-owned call configuration. It is passed by value into
// every gateway operation; the library never persists it.
type Settings struct {
	ActiveAPIKey   string
	ModelID        string
	BaseURL        string
	MaxTokens      int
	Temperature    *float64
	ProviderKeys   map[string]string // provider id -> stored key, at most one per provider
	OrganizationID string
	ProjectID      string
}

// Message is a normalized chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// RequestSpec is a fully built HTTP request: everything the transport needs to
// perform the call, with all dialect quirks already applied.
type RequestSpec struct {
	URL     string
	Headers map[string]string
	Body    []byte
}
