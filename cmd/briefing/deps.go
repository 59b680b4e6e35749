package main

import (
	"errors"
	"fmt"

	"github.com/abelbrown/briefing/internal/brain"
	"github.com/abelbrown/briefing/internal/config"
	"github.com/abelbrown/briefing/internal/gateway"
	"github.com/abelbrown/briefing/internal/logging"
	"github.com/abelbrown/briefing/internal/otel"
	"github.com/abelbrown/briefing/internal/saved"
	"github.com/abelbrown/briefing/internal/store"
)

// deps holds everything a command needs, opened from config and flags.
type deps struct {
	cfg     *config.Config
	events  *otel.Logger
	saved   *saved.Store
	gateway *gateway.Gateway
	// provider is kept so commands can check for an API key up front.
	provider *brain.HTTPProvider
	blobs    store.BlobStore

	closeStore func() error
}

func openDeps() (*deps, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDB != "" {
		cfg.Storage.DBPath = flagDB
	}

	events, err := otel.OpenFile(config.EventsPath())
	if err != nil {
		logging.Warn("event log unavailable", "error", err)
		events = otel.NewNullLogger()
	}

	blobs, closeStore, err := openBlobs(cfg)
	if err != nil {
		events.Close()
		return nil, err
	}

	var opts []brain.Option
	if cfg.Gemini.Endpoint != "" {
		opts = append(opts, brain.WithEndpoint(cfg.Gemini.Endpoint))
	}
	provider := brain.NewGeminiProvider(cfg.Gemini.APIKey, cfg.Gemini.Model, opts...)
	gw := gateway.New(provider,
		gateway.WithEvents(events),
		gateway.WithMaxTokens(cfg.Gemini.MaxTokens))

	st := saved.New(blobs, saved.WithKey(cfg.Storage.Key), saved.WithEvents(events))
	st.Load()

	return &deps{
		cfg:        cfg,
		events:     events,
		saved:      st,
		gateway:    gw,
		provider:   provider,
		blobs:      blobs,
		closeStore: closeStore,
	}, nil
}

func openBlobs(cfg *config.Config) (store.BlobStore, func() error, error) {
	if flagEphemeral {
		logging.Info("using in-memory saved store")
		return store.NewMemory(), func() error { return nil }, nil
	}

	path := cfg.DBPath()
	db, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return db, db.Close, nil
}

// requireKey fails fast when no API key is configured.
func (d *deps) requireKey() error {
	if d.provider.Available() {
		return nil
	}
	return errors.New("no API key: set GEMINI_API_KEY (or GOOGLE_API_KEY / API_KEY) or gemini.api_key in " + config.ConfigPath())
}

func (d *deps) Close() {
	if err := d.closeStore(); err != nil {
		logging.Error("closing store", "error", err)
	}
	d.events.Close()
}
