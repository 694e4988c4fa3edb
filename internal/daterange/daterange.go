// Package daterange supplies the defaults and bounds for the two date
// inputs. It stands in for the page's date picker setup: a default window
// ending today, limited to the APOD archive.
package daterange

import (
	"strings"
	"time"

	"github.com/five82/stargaze/internal/apod"
)

// DefaultDays is the length of the initial window, today included.
const DefaultDays = 9

// Selector computes default values and clamps user input to the archive.
type Selector struct {
	days int
	now  func() time.Time
}

// New returns a Selector with a window of days ending on now's calendar
// date. Non-positive days fall back to DefaultDays; a nil now uses
// time.Now.
func New(days int, now func() time.Time) Selector {
	if days <= 0 {
		days = DefaultDays
	}
	if now == nil {
		now = time.Now
	}
	return Selector{days: days, now: now}
}

// Default returns the initial start and end values.
func (s Selector) Default() (start, end string) {
	today := s.today()
	first := today.AddDate(0, 0, -(s.days - 1))
	if first.Before(apod.ArchiveStart) {
		first = apod.ArchiveStart
	}
	return apod.FormatDate(first), apod.FormatDate(today)
}

// Min is the earliest selectable date.
func (s Selector) Min() string { return apod.FormatDate(apod.ArchiveStart) }

// Max is the latest selectable date, today.
func (s Selector) Max() string { return apod.FormatDate(s.today()) }

// Clamp pulls a well-formed date into [Min, Max]. Blank and malformed
// values come back trimmed but otherwise untouched so validation can
// report them.
func (s Selector) Clamp(value string) string {
	trimmed := strings.TrimSpace(value)
	d, err := apod.ParseDate(trimmed)
	if err != nil {
		return trimmed
	}
	switch today := s.today(); {
	case d.Before(apod.ArchiveStart):
		return s.Min()
	case d.After(today):
		return apod.FormatDate(today)
	default:
		return apod.FormatDate(d)
	}
}

func (s Selector) today() time.Time {
	return apod.Day(s.now())
}
