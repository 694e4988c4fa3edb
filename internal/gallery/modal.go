package gallery

import "github.com/five82/stargaze/internal/apod"

// Target is where a pointer click landed relative to the modal.
type Target int

const (
	TargetOverlay Target = iota
	TargetContent
)

func (t Target) String() string {
	if t == TargetContent {
		return "content"
	}
	return "overlay"
}

// Detail is the modal's content, copied verbatim from the entry.
type Detail struct {
	URL         string
	HDURL       string
	Title       string
	Date        string
	Explanation string
	Copyright   string
}

// Modal is the detail overlay. The zero value is hidden and empty.
type Modal struct {
	visible bool
	detail  Detail
}

// Open fills the modal from entry and shows it. Non-image entries are
// refused and leave the modal unchanged.
func (m *Modal) Open(entry apod.Entry) bool {
	if !entry.IsImage() {
		return false
	}
	m.detail = Detail{
		URL:         entry.URL,
		HDURL:       entry.HDURL,
		Title:       entry.Title,
		Date:        entry.Date,
		Explanation: entry.Explanation,
		Copyright:   entry.Copyright,
	}
	m.visible = true
	return true
}

// Close hides the modal. The last detail is kept.
func (m *Modal) Close() {
	m.visible = false
}

// Click applies a pointer click and reports whether the modal closed.
// Only clicks on the overlay close it.
func (m *Modal) Click(target Target) bool {
	if !m.visible || target != TargetOverlay {
		return false
	}
	m.Close()
	return true
}

// Visible reports whether the modal is showing.
func (m Modal) Visible() bool { return m.visible }

// Detail returns the current or last shown content.
func (m Modal) Detail() Detail { return m.detail }

// Rect is a screen rectangle in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// HitTest classifies a click given the on-screen bounds of the content
// panel.
func HitTest(content Rect, x, y int) Target {
	if content.Contains(x, y) {
		return TargetContent
	}
	return TargetOverlay
}
