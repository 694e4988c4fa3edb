package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stargaze/internal/gallery"
)

// renderHeader renders the title bar with the gallery status on the right.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Spaces(1) + bg.Render("stargaze", styles.Logo) + bg.Spaces(2) +
		bg.Render("Astronomy Picture of the Day", styles.MutedText)

	var status string
	switch n := len(m.state.Gallery.Cards); {
	case m.state.Loading():
		status = bg.Render(m.spinner.View(), styles.AccentText) + bg.Spaces(1) +
			bg.Render("loading "+m.state.Range.String(), styles.AccentText)
	case m.state.Gallery.Notice.Kind == gallery.NoticeError:
		status = bg.Render("fetch failed", styles.DangerText)
	case n > 0:
		status = bg.Render(fmt.Sprintf("%d %s", n, ternary(n == 1, "image", "images")), styles.SuccessText) +
			bg.Spaces(2) + bg.Render(m.state.Range.String(), styles.MutedText)
	}
	return bg.Bar(left, status+bg.Spaces(1), m.width)
}

// renderForm renders the two date inputs and the fetch button. Column
// positions must agree with formSpans.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	input := func(ti string, focused bool) string {
		style := styles.Input
		if focused {
			style = styles.InputFocused
		}
		return style.Width(inputWidth).MaxWidth(inputWidth).Render(" " + ti)
	}
	button := styles.Button.Render(buttonText)
	if m.state.Loading() {
		button = styles.FaintText.Render(buttonText)
	}
	row := styles.MutedText.Render(startLabel) +
		input(m.startInput.View(), m.focus == focusStart) +
		styles.MutedText.Render(endLabel) +
		input(m.endInput.View(), m.focus == focusEnd) +
		buttonGap + button
	hint := styles.FaintText.Render(fmt.Sprintf("  %s to %s", m.selector.Min(), m.selector.Max()))
	if lipgloss.Width(row)+lipgloss.Width(hint) <= m.width {
		row += hint
	}
	return row
}

// renderFact renders the fact panel at a fixed height.
func (m Model) renderFact() string {
	styles := m.theme.Styles()
	width := max(10, m.width-2)

	var lines []string
	style := styles.InfoText
	switch m.state.Fact.Status {
	case gallery.FactPending:
		lines = []string{"Fetching a space fact..."}
		style = styles.FaintText
	case gallery.FactFailed:
		lines = wrapLines(m.state.Fact.Text, width, factLines)
		style = styles.WarningText
	default:
		lines = wrapLines(m.state.Fact.Text, width, factLines)
	}
	for len(lines) < factLines {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = " " + style.Render(l)
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders the short key help and the active theme.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	right := bg.Render(m.theme.Name, styles.FaintText) + bg.Spaces(1)
	left := bg.Spaces(1) + m.help.ShortHelpView(m.keys.ShortHelp())
	return bg.Bar(left, right, m.width)
}

func repeatRule(width int) string {
	return strings.Repeat("─", max(0, width))
}
