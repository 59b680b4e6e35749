package ui

import (
	"fmt"
	"strings"

	"github.com/abelbrown/briefing/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	topicColumns  = 3
	chipMaxWidth  = 28
	itemMaxWidth  = 72
	panelMinWidth = 40
)

// renderHeader draws the traffic lights and the app label.
func renderHeader(width int) string {
	dots := dotRed + " " + dotYellow + " " + dotGreen
	label := HeaderTitle.Render("RESUMEN DIARIO")
	gap := width - lipgloss.Width(dots) - lipgloss.Width(label)
	if gap < 1 {
		gap = 1
	}
	return dots + strings.Repeat(" ", gap) + label
}

// renderTopicGrid draws the presets in rows of three.
func renderTopicGrid(topics []model.Topic, focused int, showFocus bool, width int) string {
	cellWidth := width/topicColumns - 2
	if cellWidth < 10 {
		cellWidth = 10
	}

	var rows []string
	for start := 0; start < len(topics); start += topicColumns {
		end := start + topicColumns
		if end > len(topics) {
			end = len(topics)
		}
		var cells []string
		for i := start; i < end; i++ {
			t := topics[i]
			style := TopicButton
			if showFocus && i == focused {
				style = TopicButtonFocused
			}
			label := fmt.Sprintf("%s\n%d %s", t.Icon, i+1, t.Label)
			cells = append(cells, style.Width(cellWidth).Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// chipLabel is the truncated text shown inside a source chip.
func chipLabel(s model.Source) string {
	return "↗ " + runewidth.Truncate(s.Title, chipMaxWidth, "…")
}

// renderSourceChips lays chips out left to right, wrapping at width.
func renderSourceChips(sources []model.Source, focused int, width int) string {
	if len(sources) == 0 {
		return ""
	}

	var lines []string
	var line []string
	lineWidth := 0
	for i, s := range sources {
		style := SourceChip
		if i == focused {
			style = SourceChipFocused
		}
		chip := style.Render(chipLabel(s))
		w := lipgloss.Width(chip)
		if lineWidth > 0 && lineWidth+w > width {
			lines = append(lines, strings.Join(line, ""))
			line = nil
			lineWidth = 0
		}
		line = append(line, chip)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, ""))
	}

	return Subtitle.Bold(true).Render("FUENTES") + "\n" + strings.Join(lines, "\n")
}

// renderSavedItem draws one entry of the saved list.
func renderSavedItem(a model.SavedArticle, selected bool, width int) string {
	maxWidth := width - 2
	if maxWidth > itemMaxWidth {
		maxWidth = itemMaxWidth
	}
	if maxWidth < 10 {
		maxWidth = 10
	}

	title := runewidth.Truncate(a.Topic, maxWidth, "…")
	meta := fmt.Sprintf("%s • %d fuentes", a.Date, len(a.Sources))
	preview := runewidth.Truncate(a.Headline(), maxWidth, "…")

	titleStyle := NormalItem
	if selected {
		titleStyle = SelectedItem
	}
	return titleStyle.Render(title) + "\n" + ItemMeta.Render(meta) + "\n" + ItemMeta.Render(preview)
}

// wrapText soft-wraps text to width, keeping existing line breaks.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
