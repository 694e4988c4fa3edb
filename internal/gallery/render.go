package gallery

import (
	"strings"
	"unicode/utf8"

	"github.com/five82/stargaze/internal/apod"
)

// Fixed gallery notices.
const (
	MsgEmpty       = "No images found for the selected date range."
	MsgLoading     = "Loading amazing space images..."
	MsgFailed      = "Failed to load images. Please try again."
	MsgMissingDate = "Please select both start and end dates."
)

// DefaultExcerptLength is the rune budget for card excerpts.
const DefaultExcerptLength = 180

const ellipsis = "..."

// NoticeKind identifies which single message, if any, fills the gallery.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeLoading
	NoticeEmpty
	NoticeError
	NoticeValidation
)

// Notice replaces the card list when set.
type Notice struct {
	Kind NoticeKind
	Text string
}

// SelectFunc turns a card's full entry into the event its "view more"
// control raises.
type SelectFunc func(apod.Entry) Event

// Card is one rendered image entry.
type Card struct {
	Entry     apod.Entry
	Thumbnail string
	Title     string
	Alt       string
	Date      string
	Excerpt   string

	onSelect SelectFunc
}

// ViewMore returns the event for opening this card in the detail modal.
// It is nil when the card was rendered without a SelectFunc.
func (c Card) ViewMore() Event {
	if c.onSelect == nil {
		return nil
	}
	return c.onSelect(c.Entry)
}

// View is the complete gallery content. Each render produces a new View,
// so nothing from the previous one survives.
type View struct {
	Cards  []Card
	Notice Notice
}

// HasNotice reports whether the gallery shows a message instead of cards.
func (v View) HasNotice() bool {
	return v.Notice.Kind != NoticeNone
}

// Renderer builds views with a fixed excerpt budget.
type Renderer struct {
	ExcerptLength int
}

// Render builds a gallery from entries using the default excerpt budget.
func Render(entries []apod.Entry, onSelect SelectFunc) View {
	return Renderer{ExcerptLength: DefaultExcerptLength}.Render(entries, onSelect)
}

// Render keeps input order and emits one card per image entry. An empty
// input yields the placeholder notice and no cards. A non-empty input made
// only of videos yields neither.
func (r Renderer) Render(entries []apod.Entry, onSelect SelectFunc) View {
	if len(entries) == 0 {
		return View{Notice: Notice{Kind: NoticeEmpty, Text: MsgEmpty}}
	}
	limit := r.ExcerptLength
	if limit <= 0 {
		limit = DefaultExcerptLength
	}
	cards := make([]Card, 0, len(entries))
	for _, e := range entries {
		if !e.IsImage() {
			continue
		}
		cards = append(cards, Card{
			Entry:     e,
			Thumbnail: e.Thumbnail(),
			Title:     e.Title,
			Alt:       e.Title,
			Date:      e.Date,
			Excerpt:   Excerpt(e.Explanation, limit),
			onSelect:  onSelect,
		})
	}
	return View{Cards: cards}
}

// Loading is the view shown while a range fetch is in flight.
func Loading() View {
	return View{Notice: Notice{Kind: NoticeLoading, Text: MsgLoading}}
}

// Failed is the view shown after any range fetch failure.
func Failed() View {
	return View{Notice: Notice{Kind: NoticeError, Text: MsgFailed}}
}

// Invalid shows a validation message in place of the gallery.
func Invalid(msg string) View {
	return View{Notice: Notice{Kind: NoticeValidation, Text: msg}}
}

// Excerpt collapses whitespace in s and truncates it to at most limit
// runes, ending in "..." when anything was cut.
func Excerpt(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - utf8.RuneCountInString(ellipsis)
	if keep <= 0 {
		return ellipsis[:limit]
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:keep]), " ") + ellipsis
}
