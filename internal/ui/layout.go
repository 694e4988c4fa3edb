package ui

import "time"

// Screen rows, top to bottom: header, date form, optional fact panel, a
// rule, the gallery, and the footer.
const (
	headerRow = 0
	formRow   = 1
	factLines = 2
	footerRow = 1
)

// Card geometry. Every card is cardLines tall and followed by one blank
// row; the "view more" control is always on viewMoreLine.
const (
	cardLines    = 5
	cardStride   = cardLines + 1
	viewMoreLine = 4
)

// Date form geometry.
const (
	startLabel = " Start "
	endLabel   = "  End "
	buttonGap  = "  "
	buttonText = "[ Get Space Images ]"
	inputWidth = 12
)

// Modal limits.
const (
	modalMaxWidth  = 90
	modalMinWidth  = 30
	modalChrome    = 14 // rows used by the modal around the explanation
	diagTailLines  = 300
	defaultTimeout = 10 * time.Second
)

// span is a half-open column range [x0, x1).
type span struct{ x0, x1 int }

func (s span) contains(x int) bool { return x >= s.x0 && x < s.x1 }

// formSpans returns the clickable column ranges of the date form row.
func formSpans() (start, end, button span) {
	x := len(startLabel)
	start = span{x, x + inputWidth}
	x = start.x1 + len(endLabel)
	end = span{x, x + inputWidth}
	x = end.x1 + len(buttonGap)
	button = span{x, x + len(buttonText)}
	return start, end, button
}

func (m Model) galleryTop() int {
	top := formRow + 1
	if m.prefs.FactVisible() {
		top += factLines
	}
	return top + 1 // rule
}

func (m Model) galleryHeight() int {
	return max(1, m.height-m.galleryTop()-footerRow)
}

func (m Model) visibleCards() int {
	return max(1, (m.galleryHeight()+1)/cardStride)
}

// cardAt maps a screen row to a card index and the line within that card.
// ok is false for spacer rows and rows past the last card.
func (m Model) cardAt(y int) (index, line int, ok bool) {
	rel := y - m.galleryTop()
	if rel < 0 || rel >= m.galleryHeight() {
		return 0, 0, false
	}
	index = m.offset + rel/cardStride
	line = rel % cardStride
	if line >= cardLines || index >= len(m.state.Gallery.Cards) {
		return 0, 0, false
	}
	return index, line, true
}

// centerOffset matches lipgloss.Place: any odd cell goes after the content.
func centerOffset(total, size int) int {
	return max(0, total-size) / 2
}
