// Package model holds the briefing data types shared by the gateway, the
// saved store and the UI.
package model

import "strings"

// Localized strings the rest of the app relies on.
const (
	NoNewsPlaceholder = "No se encontraron noticias recientes sobre este tema."
	SourcePlaceholder = "Fuente"
	JustNow           = "Ahora mismo"
)

// NewsResult is one generated briefing. It is never mutated after the
// gateway builds it; saving wraps it in a SavedArticle.
type NewsResult struct {
	Summary   string   `json:"summary"`
	Sources   []Source `json:"sources"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// SavedArticle is a NewsResult the user chose to keep.
// The embedded result keeps the persisted JSON flat.
type SavedArticle struct {
	NewsResult
	ID    string `json:"id"`
	Topic string `json:"topic"`
	Date  string `json:"date"`
}

// DisplayTimestamp is the label shown when a saved article is reopened.
func (a SavedArticle) DisplayTimestamp() string {
	return a.Date + " • " + a.Timestamp
}

// Result returns the stored briefing as it should be displayed again.
func (a SavedArticle) Result() NewsResult {
	sources := make([]Source, len(a.Sources))
	copy(sources, a.Sources)
	return NewsResult{
		Summary:   a.Summary,
		Sources:   sources,
		Timestamp: a.DisplayTimestamp(),
	}
}

// Topic is a preset quick-pick topic.
type Topic struct {
	ID    string
	Label string
	Icon  string
	Query string
}

// Presets are the quick topics offered on the greeting screen.
var Presets = []Topic{
	{ID: "tech", Label: "Tech", Icon: "💻", Query: "Tecnología"},
	{ID: "world", Label: "Mundo", Icon: "🌍", Query: "Noticias Internacionales"},
	{ID: "entertainment", Label: "Ocio", Icon: "🎬", Query: "Entretenimiento y Espectáculos"},
	{ID: "sports", Label: "Deportes", Icon: "⚽", Query: "Deportes"},
	{ID: "business", Label: "Negocios", Icon: "📈", Query: "Negocios y Finanzas"},
	{ID: "science", Label: "Ciencia", Icon: "🧬", Query: "Ciencia"},
}

// PresetByID looks up a preset by id or, case-insensitively, by label.
func PresetByID(id string) (Topic, bool) {
	for _, t := range Presets {
		if t.ID == id || strings.EqualFold(t.Label, id) {
			return t, true
		}
	}
	return Topic{}, false
}

// Headline returns the first non-empty line of the summary with markdown
// bold markers removed.
func (r NewsResult) Headline() string {
	for _, l := range strings.Split(r.Summary, "\n") {
		l = strings.TrimSpace(strings.ReplaceAll(l, "**", ""))
		if l != "" {
			return l
		}
	}
	return ""
}
