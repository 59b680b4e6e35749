// Package gateway wraps the single outbound call that turns a topic into a
// briefing: one grounded generation request, summary taken verbatim,
// citations mapped to deduplicated sources.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/abelbrown/briefing/internal/brain"
	"github.com/abelbrown/briefing/internal/logging"
	"github.com/abelbrown/briefing/internal/model"
	"github.com/abelbrown/briefing/internal/otel"
)

// GatewayError is the only error kind the gateway returns. It wraps whatever
// the provider failed with.
type GatewayError struct {
	Topic string
	Err   error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("fetch briefing %q: %v", e.Topic, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Gateway fetches briefings from a grounded provider.
type Gateway struct {
	provider  brain.Provider
	events    *otel.Logger
	maxTokens int
	now       func() time.Time
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithEvents records gateway.* events on l.
func WithEvents(l *otel.Logger) Option {
	return func(g *Gateway) { g.events = l }
}

// WithMaxTokens caps the length of generated summaries. Zero keeps the
// provider default.
func WithMaxTokens(n int) Option {
	return func(g *Gateway) { g.maxTokens = n }
}

// New creates a Gateway over provider.
func New(provider brain.Provider, opts ...Option) *Gateway {
	g := &Gateway{provider: provider, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fetch issues exactly one request for topic. The topic is used as given;
// callers trim it. On failure no partial result is returned.
func (g *Gateway) Fetch(ctx context.Context, topic string) (model.NewsResult, error) {
	start := g.now()
	g.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindGatewayStart, Comp: "gateway", Topic: topic})

	resp, err := g.provider.Generate(ctx, brain.Request{
		UserPrompt: Prompt(topic),
		MaxTokens:  g.maxTokens,
		Grounding:  true,
	})
	if err != nil {
		logging.Error("Error fetching news", "topic", topic, "error", err)
		g.events.Emit(otel.Event{
			Level: otel.LevelError,
			Kind:  otel.KindGatewayError,
			Comp:  "gateway",
			Topic: topic,
			Dur:   g.now().Sub(start),
			Err:   err.Error(),
		})
		return model.NewsResult{}, &GatewayError{Topic: topic, Err: err}
	}

	result := buildResult(resp)

	logging.Info("briefing fetched", "topic", topic, "model", resp.Model,
		"summary_len", len(result.Summary), "sources", len(result.Sources))
	g.events.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindGatewayComplete,
		Comp:  "gateway",
		Topic: topic,
		Dur:   g.now().Sub(start),
		Count: len(result.Sources),
	})

	return result, nil
}

func buildResult(resp brain.Response) model.NewsResult {
	summary := resp.Content
	if summary == "" {
		summary = model.NoNewsPlaceholder
	}

	sources := make([]model.Source, 0, len(resp.Citations))
	for _, c := range resp.Citations {
		sources = append(sources, model.Source{Title: c.Title, URI: c.URI})
	}

	return model.NewsResult{
		Summary: summary,
		Sources: model.DedupeSources(sources),
	}
}
