package gallery

import (
	"errors"
	"strings"
	"time"

	"github.com/five82/stargaze/internal/apod"
)

// Event is input to Controller.Update.
type Event interface{ event() }

// PageLoaded fires once when the UI is ready to receive content.
type PageLoaded struct{}

// FetchRequested is the explicit "get images" action.
type FetchRequested struct{}

// InputsChanged carries the date inputs after one of them changed.
type InputsChanged struct {
	Start string
	End   string
}

// RangeLoaded is the outcome of a FetchRange effect.
type RangeLoaded struct {
	Seq     uint64
	Entries []apod.Entry
	Err     error
}

// FactLoaded is the outcome of the FetchRandom effect.
type FactLoaded struct {
	Entry apod.Entry
	Err   error
}

// OpenDetail asks for entry to be shown in the modal.
type OpenDetail struct {
	Entry apod.Entry
}

// ModalClicked is a pointer click while the modal is visible.
type ModalClicked struct {
	Target Target
}

// CloseDetail hides the modal regardless of where focus is.
type CloseDetail struct{}

func (PageLoaded) event()     {}
func (FetchRequested) event() {}
func (InputsChanged) event()  {}
func (RangeLoaded) event()    {}
func (FactLoaded) event()     {}
func (OpenDetail) event()     {}
func (ModalClicked) event()   {}
func (CloseDetail) event()    {}

// Effect is work the caller must perform after an update.
type Effect interface{ effect() }

// FetchRange requests the entries for Range. The result must come back as
// RangeLoaded with the same Seq.
type FetchRange struct {
	Seq   uint64
	Range apod.DateRange
}

// FetchRandom requests one random archive entry for the fact panel.
type FetchRandom struct{}

// LogFailure asks for a failure to be recorded.
type LogFailure struct {
	Op  string
	Err error
}

func (FetchRange) effect()  {}
func (FetchRandom) effect() {}
func (LogFailure) effect()  {}

// Inputs are the raw date field values.
type Inputs struct {
	Start string
	End   string
}

// State is everything the view draws from.
type State struct {
	Inputs  Inputs
	Gallery View
	Seq     uint64
	Range   apod.DateRange
	Modal   Modal
	Fact    Fact
}

// Loading reports whether a range fetch is outstanding.
func (s State) Loading() bool {
	return s.Gallery.Notice.Kind == NoticeLoading
}

// Controller applies events to State. It performs no I/O.
type Controller struct {
	now      func() time.Time
	renderer Renderer
}

// NewController returns a Controller using now for "today" and
// excerptLength for card excerpts.
func NewController(now func() time.Time, excerptLength int) Controller {
	if now == nil {
		now = time.Now
	}
	if excerptLength <= 0 {
		excerptLength = DefaultExcerptLength
	}
	return Controller{now: now, renderer: Renderer{ExcerptLength: excerptLength}}
}

// Init returns the state before PageLoaded.
func (c Controller) Init(inputs Inputs) State {
	return State{Inputs: inputs}
}

// Update applies ev to s. The returned state is what the view should show
// next; effects are for the caller to run.
func (c Controller) Update(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case PageLoaded:
		effects := []Effect{FetchRandom{}}
		if bothSet(s.Inputs) {
			var fetch []Effect
			s, fetch = c.fetch(s)
			effects = append(fetch, effects...)
		}
		return s, effects

	case FetchRequested:
		return c.fetch(s)

	case InputsChanged:
		s.Inputs = Inputs{Start: ev.Start, End: ev.End}
		if !bothSet(s.Inputs) {
			return s, nil
		}
		return c.fetch(s)

	case RangeLoaded:
		if ev.Seq != s.Seq || !s.Loading() {
			return s, nil
		}
		if ev.Err != nil {
			s.Gallery = Failed()
			return s, []Effect{LogFailure{Op: "fetch range", Err: ev.Err}}
		}
		s.Gallery = c.renderer.Render(ev.Entries, selectEntry)
		return s, nil

	case FactLoaded:
		s.Fact = FactFrom(ev.Entry, ev.Err)
		if s.Fact.Status != FactFailed {
			return s, nil
		}
		err := ev.Err
		if err == nil {
			err = ErrEmptyFact
		}
		return s, []Effect{LogFailure{Op: "fetch fact", Err: err}}

	case OpenDetail:
		s.Modal.Open(ev.Entry)
		return s, nil

	case ModalClicked:
		s.Modal.Click(ev.Target)
		return s, nil

	case CloseDetail:
		s.Modal.Close()
		return s, nil
	}
	return s, nil
}

func (c Controller) fetch(s State) (State, []Effect) {
	if !bothSet(s.Inputs) {
		s.Gallery = Invalid(MsgMissingDate)
		return s, []Effect{LogFailure{Op: "validate dates", Err: apod.ErrMissingDates}}
	}
	r, err := apod.NewDateRange(s.Inputs.Start, s.Inputs.End, c.now())
	if err != nil {
		s.Gallery = Invalid(validationMessage(err))
		return s, []Effect{LogFailure{Op: "validate dates", Err: err}}
	}
	s.Seq++
	s.Range = r
	s.Gallery = Loading()
	return s, []Effect{FetchRange{Seq: s.Seq, Range: r}}
}

func validationMessage(err error) string {
	var apiErr *apod.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

func selectEntry(e apod.Entry) Event {
	return OpenDetail{Entry: e}
}

func bothSet(in Inputs) bool {
	return strings.TrimSpace(in.Start) != "" && strings.TrimSpace(in.End) != ""
}
