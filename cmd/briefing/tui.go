package main

import (
	"context"
	"fmt"

	"github.com/abelbrown/briefing/internal/config"
	"github.com/abelbrown/briefing/internal/logging"
	"github.com/abelbrown/briefing/internal/model"
	"github.com/abelbrown/briefing/internal/otel"
	"github.com/abelbrown/briefing/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	if err := logging.Init(config.DataDir()); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if !d.provider.Available() {
		logging.Warn("no API key configured, every fetch will fail")
	}

	ring := otel.NewRingBuffer(0)
	d.events.SetRingBuffer(ring)
	d.events.Info(otel.KindStartup, "main", "briefing "+logging.Version)

	setBackground(d.cfg.UI.Background)

	appCfg := newAppConfig(d)
	if d.cfg.UI.ShowEvents {
		appCfg.Ring = ring
	}

	program := tea.NewProgram(ui.NewApp(appCfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	d.events.Info(otel.KindShutdown, "main", "")
	return nil
}

// setBackground fixes the adaptive colour choice up front. Only "auto" lets
// lipgloss query the terminal, which some terminals never answer.
func setBackground(bg string) {
	switch bg {
	case config.BackgroundAuto:
	case config.BackgroundLight:
		lipgloss.SetHasDarkBackground(false)
	default:
		lipgloss.SetHasDarkBackground(true)
	}
}

// newAppConfig wires the App's commands to the gateway and the saved store.
func newAppConfig(d *deps) ui.AppConfig {
	return ui.AppConfig{
		FetchBriefing: func(ctx context.Context, gen int, topic string) tea.Cmd {
			return func() tea.Msg {
				res, err := d.gateway.Fetch(ctx, topic)
				return ui.BriefingFetched{Gen: gen, Topic: topic, Result: res, Err: err}
			}
		},
		SaveBriefing: func(result model.NewsResult, topic string) tea.Cmd {
			return func() tea.Msg {
				a, added, err := d.saved.Add(result, topic)
				return ui.BriefingSaved{Article: a, Added: added, Saved: d.saved.List(), Err: err}
			}
		},
		DeleteBriefing: func(id string) tea.Cmd {
			return func() tea.Msg {
				removed, err := d.saved.Remove(id)
				return ui.BriefingDeleted{ID: id, Removed: removed, Saved: d.saved.List(), Err: err}
			}
		},
		Saved:          d.saved.List(),
		RevealInterval: d.cfg.RevealInterval(),
		Events:         d.events,
	}
}
