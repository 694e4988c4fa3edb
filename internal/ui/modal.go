package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stargaze/internal/gallery"
)

func (m Model) modalWidth() int {
	return max(modalMinWidth, min(modalMaxWidth, m.width-6))
}

// modalInnerWidth is the text width inside the border and padding.
func (m Model) modalInnerWidth() int {
	return m.modalWidth() - 6
}

// resetDetailViewport sizes the explanation viewport and loads the entry.
func (m *Model) resetDetailViewport() {
	inner := m.modalInnerWidth()
	body := lipgloss.NewStyle().Width(inner).Render(m.state.Modal.Detail().Explanation)
	height := max(3, min(lipgloss.Height(body), m.height-modalChrome))
	m.detail = viewport.New(inner, height)
	m.detail.SetContent(body)
}

// modalBox renders the bordered detail panel without placement.
func (m Model) modalBox() string {
	styles := m.theme.Styles()
	d := m.state.Modal.Detail()
	inner := m.modalInnerWidth()

	meta := d.Date
	if d.Copyright != "" {
		meta += "  © " + oneLine(d.Copyright)
	}
	lines := []string{
		styles.AccentText.Bold(true).Render(truncate(oneLine(d.Title), inner)),
		styles.MutedText.Render(truncate(meta, inner)),
		styles.FaintText.Render("image: " + truncateMiddle(d.URL, inner-7)),
	}
	if d.HDURL != "" {
		lines = append(lines, styles.FaintText.Render("hd:    "+truncateMiddle(d.HDURL, inner-7)))
	}
	lines = append(lines, "", m.detail.View(), "")

	hint := "esc close · click outside to dismiss"
	if m.detail.TotalLineCount() > m.detail.Height {
		hint += " · j/k scroll"
	}
	lines = append(lines, styles.FaintText.Render(hint))

	return styles.Overlay.Width(m.modalWidth() - 2).Render(strings.Join(lines, "\n"))
}

// modalRect is where modalBox lands once centered by renderDetail.
func (m Model) modalRect() gallery.Rect {
	box := m.modalBox()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	return gallery.Rect{X: centerOffset(m.width, w), Y: centerOffset(m.height, h), W: w, H: h}
}

// renderDetail renders the detail modal over a blank backdrop.
func (m Model) renderDetail() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.modalBox(),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
