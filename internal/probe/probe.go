// Package probe discovers models on local or OpenAI-compatible inference
// endpoints and checks their reachability.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"llmbridge/internal/httpclient"
)

// defaultTimeout bounds each discovery request; a local service that takes
// longer than this is treated as down.
const defaultTimeout = 5 * time.Second

// Status reports the result of a local-service reachability check.
type Status struct {
	Running bool     `json:"running"`
	Models  []string `json:"models"`
}

// Probe issues model-discovery requests. Safe for concurrent use.
type Probe struct {
	httpClient *http.Client
}

// New creates a Probe with a short-timeout HTTP client.
func New() *Probe {
	cfg := httpclient.DefaultConfig()
	cfg.Timeout = defaultTimeout
	cfg.ResponseHeaderTimeout = defaultTimeout
	return &Probe{httpClient: httpclient.New(cfg)}
}

// NewWithHTTPClient creates a Probe around a custom HTTP client.
// If httpClient is nil, the short-timeout default is used.
func NewWithHTTPClient(httpClient *http.Client) *Probe {
	if httpClient == nil {
		return New()
	}
	return &Probe{httpClient: httpClient}
}

// DiscoverModels lists the models an endpoint serves. It tries the
// OpenAI-style /v1/models listing first and falls back to the Ollama-native
// /api/tags listing, so both API generations of local services answer.
func (p *Probe) DiscoverModels(ctx context.Context, baseURL string) ([]string, error) {
	base := strings.TrimRight(baseURL, "/")

	modelsURL := base + "/v1/models"
	if strings.HasSuffix(base, "/v1") {
		modelsURL = base + "/models"
	}
	if body, err := p.get(ctx, modelsURL); err == nil {
		var models []string
		gjson.GetBytes(body, "data.#.id").ForEach(func(_, id gjson.Result) bool {
			models = append(models, id.String())
			return true
		})
		return models, nil
	}

	tagsURL := strings.ReplaceAll(base, "/v1", "") + "/api/tags"
	if body, err := p.get(ctx, tagsURL); err == nil {
		var models []string
		gjson.GetBytes(body, "models.#.name").ForEach(func(_, name gjson.Result) bool {
			models = append(models, name.String())
			return true
		})
		return models, nil
	}

	return nil, fmt.Errorf("no models endpoint reachable at %s", baseURL)
}

// CheckLocalServiceStatus reports whether an inference endpoint is up and
// which models it serves. The service counts as running when either discovery
// call answers.
func (p *Probe) CheckLocalServiceStatus(ctx context.Context, baseURL string) Status {
	models, err := p.DiscoverModels(ctx, baseURL)
	if err != nil {
		return Status{}
	}
	return Status{Running: true, Models: models}
}

func (p *Probe) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
