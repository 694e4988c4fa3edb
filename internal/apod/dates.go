package apod

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for every date the feed accepts or returns.
const DateLayout = "2006-01-02"

// ArchiveStart is the first day the APOD archive has an entry for.
var ArchiveStart = time.Date(1995, time.June, 16, 0, 0, 0, 0, time.UTC)

// ErrMissingDates is returned when either end of a range is blank.
var ErrMissingDates = errors.New("start and end dates are required")

// DateRange is an inclusive, validated pair of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses and validates a range against the archive window
// ending at today.
func NewDateRange(start, end string, today time.Time) (DateRange, error) {
	const op = "date range"
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return DateRange{}, validationError(op, ErrMissingDates)
	}
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, validationError(op, err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, validationError(op, err)
	}
	if s.After(e) {
		return DateRange{}, validationError(op, fmt.Errorf("start date %s is after end date %s", start, end))
	}
	last := Day(today)
	for _, d := range []time.Time{s, e} {
		if d.Before(ArchiveStart) || d.After(last) {
			return DateRange{}, validationError(op, fmt.Errorf("date %s is outside the archive window %s to %s",
				FormatDate(d), FormatDate(ArchiveStart), FormatDate(last)))
		}
	}
	return DateRange{Start: s, End: e}, nil
}

// Days returns the number of calendar days covered, inclusive.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return FormatDate(r.Start) + ".." + FormatDate(r.End)
}

// ParseDate parses a YYYY-MM-DD value into a UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in YYYY-MM-DD format", value)
	}
	return t, nil
}

// FormatDate renders t in the feed's date layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day reduces t to its calendar date, expressed as UTC midnight. The
// wall-clock fields of t are kept, so a local "now" maps to the local day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RandomDate picks a day uniformly from [ArchiveStart, today]. intN must
// return a value in [0, n).
func RandomDate(today time.Time, intN func(n int64) int64) time.Time {
	last := Day(today)
	span := int64(last.Sub(ArchiveStart).Hours()/24) + 1
	if span <= 1 {
		return ArchiveStart
	}
	return ArchiveStart.AddDate(0, 0, int(intN(span)))
}
