package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Indigo
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorDanger    = lipgloss.Color("196") // Red
	colorText      = lipgloss.Color("255")
)

// Panel is the rounded container every screen renders into.
var Panel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// HeaderTitle is the small uppercase label in the panel header.
var HeaderTitle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Bold(true)

// Title style for screen headings.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorText)

// Subtitle style for secondary headings.
var Subtitle = lipgloss.NewStyle().
	Foreground(colorSecondary)

// Accent highlights the topic inside headings.
var Accent = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// TopicButton style for an unfocused preset.
var TopicButton = lipgloss.NewStyle().
	Foreground(colorText).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1).
	Align(lipgloss.Center)

// TopicButtonFocused style for the focused preset.
var TopicButtonFocused = TopicButton.
	BorderForeground(colorHighlight).
	Foreground(colorHighlight).
	Bold(true)

// Divider style for the "o escribe un tema" separator.
var Divider = lipgloss.NewStyle().
	Foreground(colorMuted)

// SourceChip style for a citation chip.
var SourceChip = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// SourceChipFocused style for the chip whose URI is shown.
var SourceChipFocused = SourceChip.
	Foreground(colorText).
	Background(colorPrimary)

// Body style for the revealed briefing text.
var Body = lipgloss.NewStyle().
	Foreground(colorText)

// Timestamp style for the "Ahora mismo" / saved date label.
var Timestamp = lipgloss.NewStyle().
	Foreground(colorMuted)

// Button style for actions.
var Button = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 2).
	MarginRight(1)

// ButtonSaved style for the disabled "Guardado" action.
var ButtonSaved = Button.
	Foreground(colorSuccess)

// SelectedItem style for the highlighted saved entry.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorText).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected saved entries.
var NormalItem = lipgloss.NewStyle().
	Foreground(colorText).
	Padding(0, 1)

// ItemMeta style for the date and source count line.
var ItemMeta = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

// StatusLine style for transient messages under the panel.
var StatusLine = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// Traffic-light dots in the panel header.
var (
	dotRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("●")
	dotYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Render("●")
	dotGreen  = lipgloss.NewStyle().Foreground(colorSuccess).Render("●")
)
