package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/abelbrown/briefing/internal/logging"
)

// Compile-time interface satisfaction check
var _ Provider = (*HTTPProvider)(nil)

// ProviderConfig defines how to communicate with an LLM API
type ProviderConfig struct {
	Name       string
	Endpoint   string
	APIKey     string
	Model      string
	AuthHeader string // e.g. "x-goog-api-key"

	// BuildBody turns a request into the JSON body.
	BuildBody func(cfg *ProviderConfig, req Request) map[string]any

	// ParseResponse extracts content, model and citations from a 200 body.
	ParseResponse func(body []byte) (Response, error)
}

// HTTPProvider is a generic JSON-over-HTTP provider.
type HTTPProvider struct {
	config *ProviderConfig
	client *http.Client
}

// Option configures an HTTPProvider.
type Option func(*HTTPProvider)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *HTTPProvider) { p.client = c }
}

// WithEndpoint overrides the configured endpoint.
func WithEndpoint(url string) Option {
	return func(p *HTTPProvider) { p.config.Endpoint = url }
}

// NewHTTPProvider creates a provider from config. The default client has no
// timeout of its own; callers bound the call through the context.
func NewHTTPProvider(cfg *ProviderConfig, opts ...Option) *HTTPProvider {
	p := &HTTPProvider{
		config: cfg,
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *HTTPProvider) Name() string {
	return p.config.Name
}

func (p *HTTPProvider) Available() bool {
	return p.config.APIKey != ""
}

// Model returns the configured model identifier.
func (p *HTTPProvider) Model() string {
	return p.config.Model
}

func (p *HTTPProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if !p.Available() {
		logging.Warn("provider not configured", "provider", p.config.Name)
		return Response{}, fmt.Errorf("%s provider not configured", p.config.Name)
	}

	logging.Debug("HTTP provider request", "provider", p.config.Name, "model", p.config.Model, "grounding", req.Grounding)

	body := p.config.BuildBody(p.config, req)
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	p.setHeaders(httpReq)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.Error("API error", "provider", p.config.Name, "status", resp.StatusCode, "body", string(respBody))
		return Response{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	out, err := p.config.ParseResponse(respBody)
	if err != nil {
		return Response{}, fmt.Errorf("parse response: %w", err)
	}
	if out.Model == "" {
		out.Model = p.config.Model
	}
	out.RawResponse = string(respBody)

	logging.Debug("API response", "provider", p.config.Name, "model", out.Model,
		"content_len", len(out.Content), "citations", len(out.Citations))

	return out, nil
}

func (p *HTTPProvider) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")

	if p.config.AuthHeader != "" && p.config.APIKey != "" {
		req.Header.Set(p.config.AuthHeader, p.config.APIKey)
	}
}
