package ui

import (
	"strings"

	"github.com/five82/stargaze/internal/gallery"
)

// renderGallery renders exactly galleryHeight rows: either the single
// notice or the visible window of cards.
func (m Model) renderGallery() string {
	styles := m.theme.Styles()
	height := m.galleryHeight()
	rows := make([]string, 0, height)

	view := m.state.Gallery
	switch view.Notice.Kind {
	case gallery.NoticeLoading:
		rows = append(rows, " "+m.spinner.View()+" "+styles.AccentText.Render(view.Notice.Text))
	case gallery.NoticeError:
		rows = append(rows, " "+styles.DangerText.Render(view.Notice.Text))
	case gallery.NoticeValidation:
		rows = append(rows, " "+styles.WarningText.Render(view.Notice.Text))
	case gallery.NoticeEmpty:
		rows = append(rows, " "+styles.MutedText.Render(view.Notice.Text))
	default:
		end := min(len(view.Cards), m.offset+m.visibleCards())
		for i := m.offset; i < end; i++ {
			rows = append(rows, strings.Split(m.renderCard(view.Cards[i], i == m.selected && m.focus == focusGallery), "\n")...)
			if i < end-1 {
				rows = append(rows, "")
			}
		}
	}

	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// renderCard renders one card as cardLines rows.
func (m Model) renderCard(c gallery.Card, selected bool) string {
	styles := m.theme.Styles()
	inner := max(10, m.width-4)

	excerpt := wrapLines(c.Excerpt, inner, 2)
	for len(excerpt) < 2 {
		excerpt = append(excerpt, "")
	}

	meta := c.Date
	if c.Alt != "" || c.Thumbnail != "" {
		meta += "  img: " + c.Alt
		if c.Thumbnail != "" {
			meta += " <" + c.Thumbnail + ">"
		}
	}

	more := styles.AccentText.Render("[ View more ]")
	style := styles.Card
	if selected {
		more = styles.Selected.Render("[ View more ]")
		style = styles.CardSelected
	}

	lines := []string{
		styles.Text.Bold(true).Render(truncate(oneLine(c.Title), inner)),
		styles.MutedText.Render(truncate(oneLine(meta), inner)),
		styles.Text.Render(excerpt[0]),
		styles.Text.Render(excerpt[1]),
		more,
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) moveSelection(delta int) {
	n := len(m.state.Gallery.Cards)
	if n == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	n := len(m.state.Gallery.Cards)
	if n == 0 {
		m.selected, m.offset = 0, 0
		return
	}
	m.selected = min(m.selected, n-1)
	vis := m.visibleCards()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+vis {
		m.offset = m.selected - vis + 1
	}
	m.offset = max(0, min(m.offset, n-1))
}

// selectedCard returns the highlighted card, if any.
func (m Model) selectedCard() (gallery.Card, bool) {
	cards := m.state.Gallery.Cards
	if m.selected < 0 || m.selected >= len(cards) {
		return gallery.Card{}, false
	}
	return cards[m.selected], true
}
