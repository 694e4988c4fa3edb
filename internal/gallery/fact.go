package gallery

import (
	"errors"
	"strings"

	"github.com/five82/stargaze/internal/apod"
)

const (
	FactLeadIn   = "Did you know? "
	FactFallback = "Unable to load a space fact right now. Please try again later."
)

// FactStatus tracks the one-shot fact fetch.
type FactStatus int

const (
	FactPending FactStatus = iota
	FactReady
	FactFailed
)

// Fact is the panel's content.
type Fact struct {
	Status FactStatus
	Text   string
	Entry  apod.Entry
}

// ErrEmptyFact reports a random entry that decoded without an explanation.
var ErrEmptyFact = errors.New("random entry has no explanation")

// FactFrom builds the panel from a random-entry fetch. An entry without an
// explanation counts as a failure.
func FactFrom(entry apod.Entry, err error) Fact {
	explanation := strings.TrimSpace(entry.Explanation)
	if err != nil || explanation == "" {
		return Fact{Status: FactFailed, Text: FactFallback}
	}
	return Fact{Status: FactReady, Text: FactLeadIn + explanation, Entry: entry}
}
