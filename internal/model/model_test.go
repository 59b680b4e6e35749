package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDedupeSources(t *testing.T) {
	in := []Source{
		{Title: "A", URI: "u1"},
		{Title: "", URI: "u2"},
		{Title: "A again", URI: "u1"},
		{Title: "no uri", URI: ""},
		{Title: "C", URI: "u3"},
		{Title: "B dup", URI: "u2"},
	}

	got := DedupeSources(in)
	want := []Source{
		{Title: "A", URI: "u1"},
		{Title: SourcePlaceholder, URI: "u2"},
		{Title: "C", URI: "u3"},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d sources, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("source %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestDedupeSourcesStable(t *testing.T) {
	in := []Source{{Title: "A", URI: "u1"}, {Title: "A", URI: "u1"}, {Title: "B", URI: "u2"}}
	first := DedupeSources(in)
	second := DedupeSources(append(in, in...))
	if len(first) != len(second) {
		t.Fatalf("repeated input changed result length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("order changed at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDedupeSourcesEmpty(t *testing.T) {
	if got := DedupeSources(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2023, time.October, 12, 9, 0, 0, 0, time.UTC), "12 de octubre de 2023"},
		{time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "1 de marzo de 2024"},
		{time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC), "31 de diciembre de 2025"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	got := FormatClock(time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC))
	if got != "09:05" {
		t.Errorf("expected 09:05, got %q", got)
	}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Buenos días"},
		{11, "Buenos días"},
		{12, "Buenas tardes"},
		{17, "Buenas tardes"},
		{18, "Buenas noches"},
		{23, "Buenas noches"},
	}
	for _, tt := range tests {
		at := time.Date(2024, 1, 1, tt.hour, 30, 0, 0, time.UTC)
		if got := Greeting(at); got != tt.want {
			t.Errorf("Greeting(%02d:30) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestSavedArticleJSONIsFlat(t *testing.T) {
	a := SavedArticle{
		NewsResult: NewsResult{
			Summary:   "Resumen",
			Sources:   []Source{{Title: "A", URI: "u1"}},
			Timestamp: "10:30",
		},
		ID:    "1",
		Topic: "Tecnología",
		Date:  "12 de octubre de 2023",
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"summary", "sources", "timestamp", "id", "topic", "date"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("expected top-level key %q in %s", key, data)
		}
	}
}

func TestSavedArticleResult(t *testing.T) {
	a := SavedArticle{
		NewsResult: NewsResult{Summary: "S", Sources: []Source{{Title: "A", URI: "u1"}}, Timestamp: "10:30"},
		ID:         "1",
		Topic:      "T",
		Date:       "1 de enero de 2024",
	}

	r := a.Result()
	if r.Summary != "S" {
		t.Errorf("expected summary S, got %q", r.Summary)
	}
	if r.Timestamp != "1 de enero de 2024 • 10:30" {
		t.Errorf("unexpected timestamp %q", r.Timestamp)
	}

	r.Sources[0].Title = "changed"
	if a.Sources[0].Title != "A" {
		t.Error("Result should copy sources, not alias them")
	}
}

func TestPresetByID(t *testing.T) {
	if p, ok := PresetByID("tech"); !ok || p.Query != "Tecnología" {
		t.Errorf("expected tech preset, got %+v ok=%v", p, ok)
	}
	if p, ok := PresetByID("mundo"); !ok || p.ID != "world" {
		t.Errorf("label lookup should be case-insensitive, got %+v ok=%v", p, ok)
	}
	if _, ok := PresetByID("nope"); ok {
		t.Error("unknown preset should not be found")
	}
}

func TestHeadline(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"**12 Octubre 2023**\nresto", "12 Octubre 2023"},
		{"\n\n  segunda  ", "segunda"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := (NewsResult{Summary: tt.in}).Headline(); got != tt.want {
			t.Errorf("Headline(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
