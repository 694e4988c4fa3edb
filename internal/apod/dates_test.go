package apod

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDateRange(t *testing.T) {
	today := time.Date(2024, time.January, 10, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr string
	}{
		{"valid", "2024-01-01", "2024-01-03", ""},
		{"single day", "2024-01-10", "2024-01-10", ""},
		{"archive start", "1995-06-16", "1995-06-20", ""},
		{"trimmed", " 2024-01-01 ", "2024-01-02\t", ""},
		{"empty start", "", "2024-01-03", "required"},
		{"empty end", "2024-01-01", "   ", "required"},
		{"bad format", "01/01/2024", "2024-01-03", "YYYY-MM-DD"},
		{"reversed", "2024-01-05", "2024-01-03", "after end date"},
		{"before archive", "1995-06-15", "1995-06-20", "outside the archive window"},
		{"future", "2024-01-09", "2024-01-11", "outside the archive window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewDateRange(tt.start, tt.end, today)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewDateRange returned error: %v", err)
				}
				if r.Start.After(r.End) {
					t.Fatalf("range %v has start after end", r)
				}
				return
			}
			if err == nil {
				t.Fatalf("NewDateRange returned nil error, want %q", tt.wantErr)
			}
			if KindOf(err) != KindValidation {
				t.Fatalf("error kind = %v, want validation", KindOf(err))
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %q, want it to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewDateRange_MissingDatesIsSentinel(t *testing.T) {
	_, err := NewDateRange("", "", time.Now())
	if !errors.Is(err, ErrMissingDates) {
		t.Fatalf("error = %v, want ErrMissingDates", err)
	}
}

func TestDateRangeDays(t *testing.T) {
	r, err := NewDateRange("2024-02-27", "2024-03-02", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewDateRange returned error: %v", err)
	}
	if r.Days() != 5 {
		t.Fatalf("Days() = %d, want 5 (leap year)", r.Days())
	}
	if r.String() != "2024-02-27..2024-03-02" {
		t.Fatalf("String() = %q", r.String())
	}
}

func TestRandomDate_StaysInsideWindow(t *testing.T) {
	today := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	var gotN int64
	first := RandomDate(today, func(n int64) int64 { gotN = n; return 0 })
	last := RandomDate(today, func(n int64) int64 { return n - 1 })

	if !first.Equal(ArchiveStart) {
		t.Fatalf("lowest draw = %v, want %v", first, ArchiveStart)
	}
	if FormatDate(last) != "2024-03-10" {
		t.Fatalf("highest draw = %s, want 2024-03-10", FormatDate(last))
	}
	wantSpan := int64(Day(today).Sub(ArchiveStart).Hours()/24) + 1
	if gotN != wantSpan {
		t.Fatalf("intN called with %d, want %d", gotN, wantSpan)
	}
}

func TestEntryHelpers(t *testing.T) {
	if !(Entry{MediaType: " Image "}).IsImage() {
		t.Fatalf("IsImage should tolerate case and whitespace")
	}
	if (Entry{MediaType: MediaVideo}).IsImage() || (Entry{}).IsImage() {
		t.Fatalf("IsImage should reject video and missing types")
	}
	if got := (Entry{URL: "u", ThumbnailURL: "t"}).Thumbnail(); got != "t" {
		t.Fatalf("Thumbnail = %q, want t", got)
	}
	if got := (Entry{URL: "u"}).Thumbnail(); got != "u" {
		t.Fatalf("Thumbnail = %q, want u", got)
	}
}
