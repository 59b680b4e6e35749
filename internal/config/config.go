package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/briefing/internal/brain"
	"github.com/joho/godotenv"
)

// DirName is the per-user data directory under $HOME.
const DirName = ".briefing"

// Config is the persistent application configuration
type Config struct {
	Gemini  GeminiConfig  `json:"gemini"`
	UI      UIConfig      `json:"ui"`
	Storage StorageConfig `json:"storage"`
}

// GeminiConfig holds the briefing backend settings.
type GeminiConfig struct {
	APIKey   string `json:"api_key,omitempty"`
	Model    string `json:"model,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`   // overrides the public API URL
	MaxTokens int    `json:"max_tokens,omitempty"` // 0 keeps the model default
}

// UIConfig holds UI preferences
type UIConfig struct {
	RevealIntervalMs int    `json:"reveal_interval_ms"`
	ShowEvents       bool   `json:"show_events"` // last event line under the panel
	Background       string `json:"background"`  // "dark", "light" or "auto" (ask the terminal)
}

// Terminal background settings.
const (
	BackgroundDark  = "dark"
	BackgroundLight = "light"
	BackgroundAuto  = "auto"
)

// StorageConfig locates the saved briefings.
type StorageConfig struct {
	DBPath string `json:"db_path,omitempty"` // defaults to <data dir>/briefing.db
	Key    string `json:"key,omitempty"`     // blob name for the saved list
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model: brain.DefaultGeminiModel,
		},
		UI: UIConfig{
			RevealIntervalMs: 10,
			Background:       BackgroundDark,
		},
		Storage: StorageConfig{
			Key: "daily_news_saved",
		},
	}
}

// DataDir returns ~/.briefing, or the working directory's .briefing when
// the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// EventsPath returns the JSONL event log path.
func EventsPath() string {
	return filepath.Join(DataDir(), "events.jsonl")
}

// Load reads config from path (ConfigPath when empty), falling back to
// defaults when the file is missing or unreadable JSON. Environment
// variables, including those from .env files, override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	loadDotEnv()

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			cfg = DefaultConfig()
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	cfg.fillDefaults()
	cfg.AutoPopulateFromEnv()
	return cfg, nil
}

// loadDotEnv loads ./.env then ~/.briefing/.env. godotenv never overrides
// variables that are already set, so the real environment wins.
func loadDotEnv() {
	for _, p := range []string{".env", filepath.Join(DataDir(), ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Gemini.Model == "" {
		c.Gemini.Model = def.Gemini.Model
	}
	if c.UI.RevealIntervalMs <= 0 {
		c.UI.RevealIntervalMs = def.UI.RevealIntervalMs
	}
	if c.Storage.Key == "" {
		c.Storage.Key = def.Storage.Key
	}
	switch c.UI.Background {
	case BackgroundDark, BackgroundLight, BackgroundAuto:
	default:
		c.UI.Background = def.UI.Background
	}
	if c.Gemini.MaxTokens < 0 {
		c.Gemini.MaxTokens = 0
	}
}

// Save writes config to path (ConfigPath when empty).
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for API keys
}

// AutoPopulateFromEnv fills in the API key and model from environment variables
func (c *Config) AutoPopulateFromEnv() {
	for _, name := range []string{"API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			c.Gemini.APIKey = key
		}
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		c.Gemini.Model = model
	}
}

// DBPath returns the configured database path or the default one.
func (c *Config) DBPath() string {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath
	}
	return filepath.Join(DataDir(), "briefing.db")
}

// RevealInterval returns the typewriter delay.
func (c *Config) RevealInterval() time.Duration {
	return time.Duration(c.UI.RevealIntervalMs) * time.Millisecond
}
