// Package e2e drives the built briefing binary through a pseudo-terminal.
package e2e

import (
	"os"
	"path/filepath"

	"github.com/abelbrown/briefing/internal/config"
	"github.com/abelbrown/briefing/internal/model"
	"github.com/abelbrown/briefing/internal/saved"
	"github.com/abelbrown/briefing/internal/store"
)

// fixtureSummary is what the fake Gemini server answers with.
const fixtureSummary = "**12 Octubre 2023**\nFixture briefing body"

// groundedResponse is a minimal generateContent reply with one citation.
const groundedResponse = `{
  "candidates": [{
    "content": {"parts": [{"text": "**12 Octubre 2023**\nFixture briefing body"}]},
    "finishReason": "STOP",
    "groundingMetadata": {"groundingChunks": [{"web": {"uri": "https://example.com/fixture", "title": "Fixture Source"}}]}
  }]
}`

// seedHome writes a config pointing the provider at endpoint and stores one
// saved briefing under homeDir/.briefing.
func seedHome(homeDir, endpoint string) error {
	dataDir := filepath.Join(homeDir, config.DirName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Gemini.Endpoint = endpoint
	cfg.Gemini.APIKey = "dummy-key"
	cfg.UI.RevealIntervalMs = 1
	if err := cfg.Save(filepath.Join(dataDir, "config.json")); err != nil {
		return err
	}

	db, err := store.Open(filepath.Join(dataDir, "briefing.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	st := saved.New(db)
	st.Load()
	_, _, err = st.Add(model.NewsResult{
		Summary: "Saved fixture summary",
		Sources: []model.Source{{Title: "Old Source", URI: "https://example.com/old"}},
	}, "Fixture Topic")
	return err
}
