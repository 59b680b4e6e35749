// Package typewriter reveals a finished text one rune at a time on a fixed
// Bubble Tea tick.
//
// Each Start bumps a generation counter and every tick carries the
// generation it was scheduled for, so ticks left over from a previous text
// fall through as no-ops. At most one reveal is ever live.
package typewriter

import (
	"time"

	"github.com/abelbrown/briefing/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"
)

// DefaultInterval is the delay between revealed runes.
const DefaultInterval = 10 * time.Millisecond

// TickMsg advances the reveal with generation Gen.
type TickMsg struct {
	Gen int
}

// Model is the reveal state. It is a value type like any Bubble Tea model.
type Model struct {
	interval time.Duration
	text     []rune
	shown    int
	gen      int
	active   bool

	// shared across copies so sampling survives value updates
	progressLog *rate.Sometimes
}

// New creates an idle typewriter.
func New(interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{
		interval:    interval,
		progressLog: &rate.Sometimes{Interval: 250 * time.Millisecond},
	}
}

// Start resets the reveal to text and schedules the first tick. Any reveal
// in progress is superseded.
func (m Model) Start(text string) (Model, tea.Cmd) {
	m.gen++
	m.text = []rune(text)
	m.shown = 0
	m.active = len(m.text) > 0
	if !m.active {
		return m, nil
	}
	logging.Debug("typewriter start", "gen", m.gen, "runes", len(m.text))
	return m, m.tick()
}

// Stop cancels the reveal and clears the text. Pending ticks become no-ops.
func (m Model) Stop() Model {
	m.gen++
	m.text = nil
	m.shown = 0
	m.active = false
	return m
}

// Update handles TickMsg. Other messages are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.Gen != m.gen || !m.active {
		return m, nil
	}

	m.shown++
	if m.progressLog != nil {
		m.progressLog.Do(func() {
			logging.Debug("typewriter progress", "gen", m.gen, "shown", m.shown, "total", len(m.text))
		})
	}
	if m.shown >= len(m.text) {
		m.shown = len(m.text)
		m.active = false
		return m, nil
	}
	return m, m.tick()
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

// View returns the revealed prefix.
func (m Model) View() string {
	return string(m.text[:m.shown])
}

// Text returns the full text being revealed.
func (m Model) Text() string {
	return string(m.text)
}

// Done reports whether the whole text is visible.
func (m Model) Done() bool {
	return !m.active && m.shown == len(m.text)
}

// Active reports whether a reveal is in progress.
func (m Model) Active() bool {
	return m.active
}

// Progress returns the revealed fraction in [0, 1].
func (m Model) Progress() float64 {
	if len(m.text) == 0 {
		return 1
	}
	return float64(m.shown) / float64(len(m.text))
}

// Gen returns the current generation.
func (m Model) Gen() int {
	return m.gen
}

// Interval returns the delay between runes.
func (m Model) Interval() time.Duration {
	return m.interval
}
