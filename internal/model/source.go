package model

// Source is a web citation backing a briefing. URI is its identity.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// DedupeSources drops sources without a URI and keeps the first occurrence
// of each URI, preserving relative order. A missing title is replaced with
// SourcePlaceholder.
func DedupeSources(sources []Source) []Source {
	out := make([]Source, 0, len(sources))
	seen := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		if s.URI == "" {
			continue
		}
		if _, dup := seen[s.URI]; dup {
			continue
		}
		seen[s.URI] = struct{}{}
		if s.Title == "" {
			s.Title = SourcePlaceholder
		}
		out = append(out, s)
	}
	return out
}
