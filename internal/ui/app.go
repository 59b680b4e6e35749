package ui

import (
	"context"
	"strings"
	"time"

	"github.com/abelbrown/briefing/internal/logging"
	"github.com/abelbrown/briefing/internal/model"
	"github.com/abelbrown/briefing/internal/otel"
	"github.com/abelbrown/briefing/internal/saved"
	"github.com/abelbrown/briefing/internal/typewriter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppConfig holds the commands the App issues. main wires them to the
// gateway and the saved store; the App never touches either directly.
type AppConfig struct {
	// FetchBriefing returns a Cmd that fetches topic and replies with
	// BriefingFetched carrying gen.
	FetchBriefing func(ctx context.Context, gen int, topic string) tea.Cmd

	// SaveBriefing returns a Cmd that saves result and replies with BriefingSaved.
	SaveBriefing func(result model.NewsResult, topic string) tea.Cmd

	// DeleteBriefing returns a Cmd that deletes id and replies with BriefingDeleted.
	DeleteBriefing func(id string) tea.Cmd

	// Saved is the list loaded at startup, newest first.
	Saved []model.SavedArticle

	RevealInterval time.Duration
	Now            func() time.Time

	// Events and Ring are optional. When Ring is set the newest event is
	// shown under the panel.
	Events *otel.Logger
	Ring   *otel.RingBuffer
}

// App is the root Bubble Tea model and the view-state controller.
// All state lives here and only changes inside Update.
type App struct {
	cfg AppConfig

	state State
	focus focus

	topicCursor int
	input       textinput.Model
	spinner     spinner.Model
	body        viewport.Model
	help        help.Model
	typer       typewriter.Model

	topic    string // display label of the current query
	result   *model.NewsResult
	chip     int // focused source chip, -1 for none
	saved    []model.SavedArticle
	cursor   int // saved list selection
	saving   bool
	fetchGen int
	cancel   context.CancelFunc

	status string
	width  int
	height int
	ready  bool
}

// NewApp creates the App in the Greeting state.
func NewApp(cfg AppConfig) App {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "Cripto, Noticias locales..."
	ti.CharLimit = 120
	ti.Prompt = "› "

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(colorHighlight)),
	)

	list := make([]model.SavedArticle, len(cfg.Saved))
	copy(list, cfg.Saved)

	return App{
		cfg:     cfg,
		state:   StateGreeting,
		input:   ti,
		spinner: sp,
		body:    viewport.New(panelMinWidth, 10),
		help:    help.New(),
		typer:   typewriter.New(cfg.RevealInterval),
		saved:   list,
		chip:    -1,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Force) {
			a.cancelFetch()
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case BriefingFetched:
		return a.handleFetched(msg)

	case BriefingSaved:
		a.saving = false
		if msg.Err != nil {
			logging.Error("save failed", "error", msg.Err)
			a.status = "No se pudo guardar: " + msg.Err.Error()
			return a, nil
		}
		a.saved = msg.Saved
		if msg.Added {
			a.status = "Resumen guardado"
		}
		return a, nil

	case BriefingDeleted:
		if msg.Err != nil {
			logging.Error("delete failed", "id", msg.ID, "error", msg.Err)
			a.status = "No se pudo borrar: " + msg.Err.Error()
			return a, nil
		}
		a.saved = msg.Saved
		a.clampCursor()
		return a, nil

	case typewriter.TickMsg:
		var cmd tea.Cmd
		a.typer, cmd = a.typer.Update(msg)
		a.refreshBody()
		return a, cmd

	case spinner.TickMsg:
		if a.state != StateLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.state == StateGreeting && a.focus == focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""

	switch a.state {
	case StateGreeting:
		return a.handleGreetingKey(msg)
	case StateLoading:
		if msg.String() == "esc" {
			a.cancelFetch()
			a.fetchGen++
			a.clear()
			a.transition(StateGreeting)
		}
		return a, nil
	case StateResult:
		return a.handleResultKey(msg)
	case StateError:
		switch {
		case key.Matches(msg, keys.Retry):
			a.clear()
			a.transition(StateGreeting)
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		}
		return a, nil
	case StateSavedList:
		return a.handleSavedKey(msg)
	}
	return a, nil
}

func (a App) handleGreetingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.focus == focusInput {
		switch msg.String() {
		case "enter":
			topic := strings.TrimSpace(a.input.Value())
			if topic == "" {
				return a, nil
			}
			return a.startFetch(topic)
		case "esc", "tab":
			a.focus = focusTopics
			a.input.Blur()
			return a, nil
		case "ctrl+s":
			a.input.Blur()
			a.focus = focusTopics
			a.transition(StateSavedList)
			return a, nil
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		idx := int(s[0] - '1')
		if idx < len(model.Presets) {
			a.topicCursor = idx
			return a.startFetch(model.Presets[idx].Query)
		}
		return a, nil
	}

	n := len(model.Presets)
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Left):
		if a.topicCursor > 0 {
			a.topicCursor--
		}
	case key.Matches(msg, keys.Right):
		if a.topicCursor < n-1 {
			a.topicCursor++
		}
	case key.Matches(msg, keys.Up):
		if a.topicCursor-topicColumns >= 0 {
			a.topicCursor -= topicColumns
		}
	case key.Matches(msg, keys.Down):
		if a.topicCursor+topicColumns < n {
			a.topicCursor += topicColumns
		}
	case key.Matches(msg, keys.Select):
		return a.startFetch(model.Presets[a.topicCursor].Query)
	case key.Matches(msg, keys.Input):
		a.focus = focusInput
		return a, a.input.Focus()
	case key.Matches(msg, keys.Saved):
		a.transition(StateSavedList)
	}
	return a, nil
}

func (a App) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		a.clear()
		a.transition(StateGreeting)
		return a, nil
	case key.Matches(msg, keys.Save):
		return a.save()
	case key.Matches(msg, keys.Chip):
		if a.result != nil && len(a.result.Sources) > 0 {
			a.chip = (a.chip + 1) % len(a.result.Sources)
		}
		return a, nil
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.body, cmd = a.body.Update(msg)
	return a, cmd
}

func (a App) handleSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		a.transition(StateGreeting)
	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, keys.Down):
		if a.cursor < len(a.saved)-1 {
			a.cursor++
		}
	case key.Matches(msg, keys.Select):
		if a.cursor < len(a.saved) {
			return a.openSaved(a.saved[a.cursor])
		}
	case key.Matches(msg, keys.Delete):
		if a.cursor < len(a.saved) && a.cfg.DeleteBriefing != nil {
			return a, a.cfg.DeleteBriefing(a.saved[a.cursor].ID)
		}
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	}
	return a, nil
}

// startFetch enters Loading for topic and issues the gateway call.
func (a App) startFetch(topic string) (tea.Model, tea.Cmd) {
	if a.cfg.FetchBriefing == nil {
		return a, nil
	}

	a.input.Blur()
	a.focus = focusTopics
	a.topic = topic
	a.fetchGen++
	a.cancelFetch()

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.transition(StateLoading)

	logging.Info("fetching briefing", "topic", topic, "gen", a.fetchGen)
	return a, tea.Batch(a.cfg.FetchBriefing(ctx, a.fetchGen, topic), a.spinner.Tick)
}

func (a App) handleFetched(msg BriefingFetched) (tea.Model, tea.Cmd) {
	if msg.Gen != a.fetchGen || a.state != StateLoading {
		logging.Debug("dropping stale briefing", "gen", msg.Gen, "current", a.fetchGen, "state", a.state.String())
		a.cfg.Events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindStale, Comp: "ui", Gen: msg.Gen, Topic: msg.Topic})
		return a, nil
	}
	a.cancelFetch()

	if msg.Err != nil {
		logging.Error("briefing failed", "topic", msg.Topic, "error", msg.Err)
		a.transition(StateError)
		return a, nil
	}

	result := msg.Result
	result.Timestamp = model.JustNow
	return a.showResult(result)
}

// openSaved re-enters Result from stored data without calling the gateway.
func (a App) openSaved(article model.SavedArticle) (tea.Model, tea.Cmd) {
	a.topic = article.Topic
	return a.showResult(article.Result())
}

func (a App) showResult(result model.NewsResult) (tea.Model, tea.Cmd) {
	a.result = &result
	a.chip = -1
	a.saving = false
	a.transition(StateResult)

	var cmd tea.Cmd
	a.typer, cmd = a.typer.Start(result.Summary)
	a.body.GotoTop()
	a.refreshBody()
	return a, cmd
}

func (a App) save() (tea.Model, tea.Cmd) {
	if a.result == nil || a.saving || a.IsCurrentSaved() || a.cfg.SaveBriefing == nil {
		return a, nil
	}
	a.saving = true
	stored := *a.result
	stored.Timestamp = ""
	return a, a.cfg.SaveBriefing(stored, a.topic)
}

// clear drops the topic, result, revealed text and custom input.
func (a *App) clear() {
	a.topic = ""
	a.result = nil
	a.chip = -1
	a.saving = false
	a.typer = a.typer.Stop()
	a.input.Reset()
	a.input.Blur()
	a.focus = focusTopics
	a.refreshBody()
}

func (a *App) cancelFetch() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *App) transition(to State) {
	if a.state == StateResult && to != StateResult {
		a.typer = a.typer.Stop()
	}
	from := a.state
	a.state = to
	a.cfg.Events.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindTransition,
		Comp:  "ui",
		From:  from.String(),
		To:    to.String(),
		Topic: a.topic,
		Gen:   a.fetchGen,
	})
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.saved) {
		a.cursor = len(a.saved) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) innerWidth() int {
	w := a.width - Panel.GetHorizontalFrameSize()
	if w < panelMinWidth {
		w = panelMinWidth
	}
	return w
}

func (a *App) resize() {
	a.body.Width = a.innerWidth()
	// header, title, chips, actions, help and panel frame
	h := a.height - Panel.GetVerticalFrameSize() - 12
	if h < 3 {
		h = 3
	}
	a.body.Height = h
	a.input.Width = a.innerWidth() - 4
	a.help.Width = a.innerWidth()
	a.refreshBody()
}

func (a *App) refreshBody() {
	text := a.typer.View()
	if !a.typer.Done() {
		text += "▌"
	}
	a.body.SetContent(Body.Render(wrapText(text, a.body.Width)))
}

// View renders the UI.
func (a App) View() string {
	width := a.innerWidth()

	var b strings.Builder
	b.WriteString(renderHeader(width))
	b.WriteString("\n\n")

	switch a.state {
	case StateGreeting:
		b.WriteString(a.viewGreeting(width))
	case StateLoading:
		b.WriteString(a.viewLoading())
	case StateResult:
		b.WriteString(a.viewResult(width))
	case StateError:
		b.WriteString(a.viewError())
	case StateSavedList:
		b.WriteString(a.viewSaved(width))
	}

	b.WriteString("\n\n")
	b.WriteString(a.help.View(stateHelp{state: a.state, focus: a.focus, saved: a.IsCurrentSaved()}))

	out := Panel.Width(width + Panel.GetHorizontalPadding()).Render(b.String())

	if a.status != "" {
		out += "\n" + StatusLine.Render(a.status)
	} else if a.cfg.Ring != nil {
		if ev, ok := a.cfg.Ring.Latest(); ok {
			out += "\n" + StatusLine.Render(string(ev.Kind)+" "+ev.From+"→"+ev.To)
		}
	}
	return out
}

func (a App) viewGreeting(width int) string {
	var b strings.Builder
	b.WriteString(Title.Render(model.Greeting(a.cfg.Now()) + "!"))
	b.WriteString("\n")
	b.WriteString(Subtitle.Render("¿De qué te gustaría informarte hoy?"))
	b.WriteString("\n\n")
	b.WriteString(renderTopicGrid(model.Presets, a.topicCursor, a.focus == focusTopics, width))
	b.WriteString("\n\n")
	b.WriteString(Divider.Render("── o escribe un tema ──"))
	b.WriteString("\n")
	b.WriteString(a.input.View())
	return b.String()
}

func (a App) viewLoading() string {
	return a.spinner.View() + " " + Title.Render("Buscando ") + Accent.Render(`"`+a.topic+`"`) +
		"\n\n" + Subtitle.Render("Consultando fuentes...")
}

func (a App) viewResult(width int) string {
	if a.result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(Title.Render("Noticias de ") + Accent.Render(a.topic))
	ts := a.result.Timestamp
	if ts == "" {
		ts = model.JustNow
	}
	b.WriteString("  " + Timestamp.Render(ts))
	b.WriteString("\n\n")
	b.WriteString(a.body.View())

	if chips := renderSourceChips(a.result.Sources, a.chip, width); chips != "" {
		b.WriteString("\n\n")
		b.WriteString(chips)
		if a.chip >= 0 && a.chip < len(a.result.Sources) {
			b.WriteString("\n")
			b.WriteString(Timestamp.Render(a.result.Sources[a.chip].URI))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(Button.Render("Volver"))
	if a.IsCurrentSaved() {
		b.WriteString(ButtonSaved.Render("✓ Guardado"))
	} else {
		b.WriteString(Button.Render("Guardar"))
	}
	return b.String()
}

func (a App) viewError() string {
	return Title.Render("¡Vaya!") + "\n" +
		ErrorStyle.Render("Algo salió mal al buscar las noticias.") + "\n\n" +
		Button.Render("Intentar de nuevo")
}

func (a App) viewSaved(width int) string {
	var b strings.Builder
	b.WriteString(Title.Render("Resúmenes Guardados"))
	b.WriteString("\n\n")
	if len(a.saved) == 0 {
		b.WriteString(Subtitle.Render("No hay artículos guardados."))
		return b.String()
	}
	for i, art := range a.saved {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(renderSavedItem(art, i == a.cursor, width))
	}
	return b.String()
}

// IsCurrentSaved reports whether the displayed result's summary is already
// in the saved list.
func (a App) IsCurrentSaved() bool {
	return a.result != nil && saved.ContainsSummary(a.saved, a.result.Summary)
}

// State returns the active screen (for testing).
func (a App) State() State {
	return a.state
}

// Topic returns the display label of the current query (for testing).
func (a App) Topic() string {
	return a.topic
}

// Result returns the displayed briefing, if any (for testing).
func (a App) Result() (model.NewsResult, bool) {
	if a.result == nil {
		return model.NewsResult{}, false
	}
	return *a.result, true
}

// RevealedText returns what the typewriter has shown so far (for testing).
func (a App) RevealedText() string {
	return a.typer.View()
}

// Saved returns the App's copy of the saved list (for testing).
func (a App) Saved() []model.SavedArticle {
	return a.saved
}

// InputValue returns the custom topic input (for testing).
func (a App) InputValue() string {
	return a.input.Value()
}
