package ui

import (
	"strings"
	"testing"

	"github.com/abelbrown/briefing/internal/model"
	"github.com/charmbracelet/lipgloss"
)

func TestChipLabelTruncates(t *testing.T) {
	long := model.Source{Title: strings.Repeat("titular ", 10), URI: "u"}
	label := chipLabel(long)

	if !strings.HasSuffix(label, "…") {
		t.Errorf("long titles should be truncated, got %q", label)
	}
	if w := lipgloss.Width(label); w > chipMaxWidth+2 {
		t.Errorf("label too wide: %d", w)
	}

	short := chipLabel(model.Source{Title: "El País", URI: "u"})
	if short != "↗ El País" {
		t.Errorf("unexpected short label %q", short)
	}
}

func TestRenderSourceChipsEmpty(t *testing.T) {
	if got := renderSourceChips(nil, -1, 80); got != "" {
		t.Errorf("no sources should render nothing, got %q", got)
	}
}

func TestRenderSourceChipsWraps(t *testing.T) {
	var sources []model.Source
	for i := 0; i < 8; i++ {
		sources = append(sources, model.Source{Title: "Fuente larga número", URI: string(rune('a' + i))})
	}

	out := renderSourceChips(sources, -1, 40)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Errorf("expected chips to wrap onto several lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "FUENTES") {
		t.Errorf("expected heading first, got %q", lines[0])
	}
}

func TestRenderSavedItem(t *testing.T) {
	a := model.SavedArticle{
		NewsResult: model.NewsResult{
			Summary: "**Mercados**\nSuben las bolsas",
			Sources: []model.Source{{Title: "A", URI: "u1"}, {Title: "B", URI: "u2"}},
		},
		ID:    "1",
		Topic: "Negocios y Finanzas",
		Date:  "12 de octubre de 2023",
	}

	out := renderSavedItem(a, true, 60)
	for _, want := range []string{"Negocios y Finanzas", "12 de octubre de 2023 • 2 fuentes", "Mercados"} {
		if !strings.Contains(out, want) {
			t.Errorf("saved item missing %q:\n%s", want, out)
		}
	}
}

func TestTopicGridShowsAllPresets(t *testing.T) {
	out := renderTopicGrid(model.Presets, 0, true, 80)
	for _, p := range model.Presets {
		if !strings.Contains(out, p.Label) {
			t.Errorf("grid missing %q", p.Label)
		}
	}
}
