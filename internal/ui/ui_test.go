package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/stargaze/internal/apod"
	"github.com/five82/stargaze/internal/daterange"
	"github.com/five82/stargaze/internal/gallery"
	"github.com/five82/stargaze/internal/prefs"
)

type mockFetcher struct {
	mock.Mock
}

func (f *mockFetcher) FetchRange(ctx context.Context, r apod.DateRange) ([]apod.Entry, error) {
	args := f.Called(ctx, r)
	entries, _ := args.Get(0).([]apod.Entry)
	return entries, args.Error(1)
}

func (f *mockFetcher) FetchRandom(ctx context.Context) (apod.Entry, error) {
	args := f.Called(ctx)
	entry, _ := args.Get(0).(apod.Entry)
	return entry, args.Error(1)
}

func rangeOf(want string) any {
	return mock.MatchedBy(func(r apod.DateRange) bool { return r.String() == want })
}

func fixedClock() time.Time {
	return time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
}

type harness struct {
	model   Model
	fetcher *mockFetcher
	logs    *observer.ObservedLogs
}

func newHarness(t *testing.T, start, end string) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	ctrl := gallery.NewController(fixedClock, 60)
	sel := daterange.New(9, fixedClock)
	f := &mockFetcher{}
	m := New(Options{
		Client:     f,
		Controller: &ctrl,
		Selector:   &sel,
		Logger:     zap.New(core),
		Timeout:    time.Second,
		Prefs:      prefs.Defaults(),
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		Start:      start,
		End:        end,
	})
	h := &harness{model: m, fetcher: f, logs: logs}
	h.send(t, tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

// send delivers msg and then every message produced by the resulting
// commands, depth first, until the model is idle. Spinner ticks are
// dropped so animation never loops.
func (h *harness) send(t *testing.T, msg tea.Msg) {
	t.Helper()
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "message loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if _, ok := next.(spinner.TickMsg); ok {
			continue
		}
		updated, cmd := h.model.Update(next)
		h.model = updated.(Model)
		queue = append(queue, collect(cmd)...)
	}
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	h.send(t, h.model.Init()())
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func img(date, title string) apod.Entry {
	return apod.Entry{
		Date:        date,
		Title:       title,
		Explanation: title + " explained in some detail.",
		URL:         "https://apod.nasa.gov/image/" + date + ".jpg",
		MediaType:   apod.MediaImage,
	}
}

func TestStartupLoadsGalleryAndFact(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-03")
	h.fetcher.On("FetchRange", mock.Anything, rangeOf("2024-01-01..2024-01-03")).Return([]apod.Entry{
		img("2024-01-01", "Orion Nebula"),
		{Date: "2024-01-02", Title: "Launch Video", MediaType: apod.MediaVideo},
		img("2024-01-03", "Andromeda"),
	}, nil).Once()
	h.fetcher.On("FetchRandom", mock.Anything).Return(apod.Entry{Explanation: "Neutron stars spin fast."}, nil).Once()

	h.start(t)

	cards := h.model.state.Gallery.Cards
	require.Len(t, cards, 2)
	assert.Equal(t, "Orion Nebula", cards[0].Title)
	assert.Equal(t, "Andromeda", cards[1].Title)

	view := h.model.View()
	assert.Contains(t, view, "Orion Nebula")
	assert.Contains(t, view, "Andromeda")
	assert.NotContains(t, view, "Launch Video")
	assert.Contains(t, view, "Did you know? Neutron stars spin fast.")
	h.fetcher.AssertExpectations(t)
}

func TestDefaultRangeComesFromSelector(t *testing.T) {
	h := newHarness(t, "", "")
	assert.Equal(t, "2024-01-02", h.model.startInput.Value())
	assert.Equal(t, "2024-01-10", h.model.endInput.Value())
}

func TestEmptyInputsShowValidationWithoutNetwork(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-03")
	h.model.startInput.SetValue("")
	h.model.endInput.SetValue("")

	h.send(t, keyPress("tab"))
	require.Equal(t, focusStart, h.model.focus)
	h.send(t, keyPress("enter"))

	assert.Contains(t, h.model.View(), "Please select both start and end dates.")
	h.fetcher.AssertNotCalled(t, "FetchRange", mock.Anything, mock.Anything)

	warned := h.logs.FilterMessage("validate dates rejected").All()
	require.Len(t, warned, 1)
	assert.Equal(t, zapcore.WarnLevel, warned[0].Level)
}

func TestRateLimitShowsFixedFailure(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-03")
	h.fetcher.On("FetchRange", mock.Anything, mock.Anything).
		Return(nil, &apod.Error{Kind: apod.KindNetwork, Op: "fetch range", Status: 429}).Once()
	h.fetcher.On("FetchRandom", mock.Anything).Return(apod.Entry{}, errors.New("offline")).Once()

	require.NotPanics(t, func() { h.start(t) })

	view := h.model.View()
	assert.Contains(t, view, "Failed to load images. Please try again.")
	assert.Contains(t, view, gallery.FactFallback)

	failed := h.logs.FilterMessage("fetch range failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.EqualValues(t, 429, failed[0].ContextMap()["status"])
	assert.Equal(t, "network", failed[0].ContextMap()["kind"])
	assert.Len(t, h.logs.FilterMessage("fetch fact failed").All(), 1)
}

func TestViewMoreClickOpensModalAndOverlayCloses(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-01")
	entry := img("2024-01-01", "Pillars of Creation")
	entry.HDURL = "https://apod.nasa.gov/image/hd.jpg"
	h.fetcher.On("FetchRange", mock.Anything, mock.Anything).Return([]apod.Entry{entry}, nil).Once()
	h.fetcher.On("FetchRandom", mock.Anything).Return(apod.Entry{Explanation: "x"}, nil).Once()
	h.start(t)

	// A click on the title row only selects.
	h.send(t, click(5, h.model.galleryTop()))
	require.False(t, h.model.state.Modal.Visible())

	h.send(t, click(5, h.model.galleryTop()+viewMoreLine))
	require.True(t, h.model.state.Modal.Visible())
	assert.Equal(t, entry.Explanation, h.model.state.Modal.Detail().Explanation)
	assert.Contains(t, h.model.View(), "Pillars of Creation")
	assert.Contains(t, h.model.View(), entry.HDURL)

	rect := h.model.modalRect()
	require.Greater(t, rect.X, 0)
	require.Greater(t, rect.Y, 0)

	h.send(t, click(rect.X+rect.W/2, rect.Y+rect.H/2))
	assert.True(t, h.model.state.Modal.Visible(), "click inside content keeps modal open")

	h.send(t, click(rect.X-1, rect.Y))
	assert.False(t, h.model.state.Modal.Visible(), "click on overlay closes modal")
	assert.Equal(t, "Pillars of Creation", h.model.state.Modal.Detail().Title)
}

func TestEnterOpensSelectedCardAndEscCloses(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-02")
	h.fetcher.On("FetchRange", mock.Anything, mock.Anything).Return([]apod.Entry{
		img("2024-01-01", "First"),
		img("2024-01-02", "Second"),
	}, nil).Once()
	h.fetcher.On("FetchRandom", mock.Anything).Return(apod.Entry{Explanation: "x"}, nil).Once()
	h.start(t)

	h.send(t, keyPress("j"))
	h.send(t, keyPress("enter"))
	require.True(t, h.model.state.Modal.Visible())
	assert.Equal(t, "Second", h.model.state.Modal.Detail().Title)

	h.send(t, keyPress("esc"))
	assert.False(t, h.model.state.Modal.Visible())
}

func TestChangedFieldFetchesOnBlur(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-03")
	h.fetcher.On("FetchRange", mock.Anything, rangeOf("2024-01-02..2024-01-03")).
		Return([]apod.Entry{img("2024-01-02", "Comet")}, nil).Once()
	h.fetcher.On("FetchRange", mock.Anything, rangeOf("2024-01-02..2024-01-10")).
		Return([]apod.Entry{img("2024-01-05", "Moon")}, nil).Once()

	// Unchanged blur does nothing.
	h.send(t, keyPress("tab"))
	h.send(t, keyPress("esc"))
	h.fetcher.AssertNotCalled(t, "FetchRange", mock.Anything, mock.Anything)

	h.send(t, keyPress("tab"))
	h.send(t, keyPress("x"))
	assert.Equal(t, "2024-01-01", h.model.startInput.Value(), "letters are rejected")
	h.model.startInput.SetValue("2024-01-02")
	h.send(t, keyPress("tab"))
	require.Equal(t, focusEnd, h.model.focus)
	require.Len(t, h.model.state.Gallery.Cards, 1)
	assert.Equal(t, "Comet", h.model.state.Gallery.Cards[0].Title)
	h.model.endInput.SetValue("2030-01-01")
	h.send(t, keyPress("tab"))

	assert.Equal(t, focusGallery, h.model.focus)
	assert.Equal(t, "2024-01-10", h.model.endInput.Value(), "clamped to today")
	require.Len(t, h.model.state.Gallery.Cards, 1)
	assert.Equal(t, "Moon", h.model.state.Gallery.Cards[0].Title)
	h.fetcher.AssertExpectations(t)
}

func TestThemeAndFactTogglesPersist(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-03")
	path := h.model.prefsPath

	h.send(t, keyPress("T"))
	assert.Equal(t, "Kanagawa", h.model.theme.Name)
	h.send(t, keyPress("F"))
	assert.False(t, h.model.prefs.FactVisible())

	saved, err := prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Kanagawa", saved.Theme)
	assert.False(t, saved.FactVisible())
	assert.NotContains(t, h.model.View(), "Fetching a space fact")
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-03")
	h.send(t, keyPress("?"))
	require.True(t, h.model.showHelp)
	assert.Contains(t, h.model.View(), "Keyboard Shortcuts")
	h.send(t, keyPress("x"))
	assert.False(t, h.model.showHelp)
}

func TestFormSpansMatchRenderedForm(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-03")
	start, end, button := formSpans()
	plain := stripANSI(h.model.renderForm())

	assert.Equal(t, " 2024-01-01", plain[start.x0:start.x0+11])
	assert.Equal(t, " 2024-01-03", plain[end.x0:end.x0+11])
	assert.Equal(t, buttonText, plain[button.x0:button.x1])
}

func TestWrapLines(t *testing.T) {
	got := wrapLines("one two three four five six", 9, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "one two", got[0])
	assert.Equal(t, "three...", got[1])
	assert.Nil(t, wrapLines("   ", 10, 2))
}

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "", truncateMiddle("  ", 10))
	assert.Equal(t, "ab", truncateMiddle("abcd", 2))
	assert.Equal(t, "https://x/a.jpg", truncateMiddle("https://x/a.jpg", 40))

	got := truncateMiddle("https://apod.nasa.gov/apod/image/2401/very_long_name.jpg", 21)
	assert.Len(t, []rune(got), 21)
	assert.True(t, strings.HasPrefix(got, "https://ap"))
	assert.True(t, strings.HasSuffix(got, "e.jpg"))
	assert.Contains(t, got, "…")
}

func TestDiagnosticsOverlayTailsLog(t *testing.T) {
	h := newHarness(t, "2024-01-01", "2024-01-03")
	path := filepath.Join(t.TempDir(), "stargaze.log")
	line := "2024-01-10 09:00:00\tERROR\tui/effects.go:77\tfetch range failed\t{\"status\": 429}\n"
	require.NoError(t, os.WriteFile(path, []byte(line), 0o644))
	h.model.logPath = path

	h.send(t, keyPress("L"))
	require.True(t, h.model.showDiag)
	require.NoError(t, h.model.diagErr)
	require.Len(t, h.model.diagLines, 1)

	view := stripANSI(h.model.View())
	assert.Contains(t, view, "Diagnostics")
	assert.Contains(t, view, "fetch range failed")
	assert.Contains(t, view, "ERROR")

	h.send(t, keyPress("esc"))
	assert.False(t, h.model.showDiag)
}
