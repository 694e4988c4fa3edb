package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/stargaze/internal/gallery"
	"github.com/five82/stargaze/internal/prefs"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.state.Modal.Visible() {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Escape):
			return m.dispatch(gallery.CloseDetail{})
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	if m.showDiag {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Escape, m.keys.Diagnostics):
			m.showDiag = false
			return m, nil
		}
		var cmd tea.Cmd
		m.diagView, cmd = m.diagView.Update(msg)
		return m, cmd
	}

	if m.focus != focusGallery {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleFact):
		m.prefs = m.prefs.WithFact(!m.prefs.FactVisible())
		m.ensureVisible()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiag = true
		m.diagLines, m.diagErr = nil, nil
		m.resetDiagViewport()
		return m, loadDiagCmd(m.logPath)

	case key.Matches(msg, m.keys.Tab):
		return m.setFocus(focusStart)

	case key.Matches(msg, m.keys.ShiftTab):
		return m.setFocus(focusEnd)

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(-len(m.state.Gallery.Cards))
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(len(m.state.Gallery.Cards))

	case key.Matches(msg, m.keys.ViewMore):
		if card, ok := m.selectedCard(); ok {
			return m.dispatch(card.ViewMore())
		}
		if msg.String() == "enter" {
			return m.fetch()
		}
	}

	return m, nil
}

// handleInputKey processes keys while a date field has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		return m.setFocus(ternary(m.focus == focusStart, focusEnd, focusGallery))
	case key.Matches(msg, m.keys.ShiftTab):
		return m.setFocus(ternary(m.focus == focusEnd, focusStart, focusGallery))
	case key.Matches(msg, m.keys.Escape):
		return m.setFocus(focusGallery)
	case key.Matches(msg, m.keys.Fetch):
		return m.fetch()
	}

	if msg.Type == tea.KeyRunes && !dateRunes(msg.Runes) {
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusStart {
		m.startInput, cmd = m.startInput.Update(msg)
	} else {
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return m, cmd
}

// handleMouse processes clicks and wheel scrolling.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown

	switch {
	case m.showHelp:
		if !wheel {
			m.showHelp = false
		}
		return m, nil

	case m.state.Modal.Visible():
		if wheel {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		target := gallery.HitTest(m.modalRect(), msg.X, msg.Y)
		return m.dispatch(gallery.ModalClicked{Target: target})

	case m.showDiag:
		var cmd tea.Cmd
		m.diagView, cmd = m.diagView.Update(msg)
		return m, cmd
	}

	if wheel {
		m.moveSelection(ternary(msg.Button == tea.MouseButtonWheelUp, -1, 1))
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if msg.Y == formRow {
		start, end, button := formSpans()
		switch {
		case start.contains(msg.X):
			return m.setFocus(focusStart)
		case end.contains(msg.X):
			return m.setFocus(focusEnd)
		case button.contains(msg.X):
			return m.fetch()
		}
	}

	if index, line, ok := m.cardAt(msg.Y); ok {
		next, cmd := m.setFocus(focusGallery)
		if index >= len(next.state.Gallery.Cards) {
			return next, cmd
		}
		next.selected = index
		next.ensureVisible()
		if line == viewMoreLine {
			opened, openCmd := next.dispatch(next.state.Gallery.Cards[index].ViewMore())
			return opened, tea.Batch(cmd, openCmd)
		}
		return next, cmd
	}

	return m.setFocus(focusGallery)
}

// setFocus moves keyboard focus. Leaving a date field whose value changed
// clamps it into the archive window and raises InputsChanged.
func (m Model) setFocus(f focus) (Model, tea.Cmd) {
	if f == m.focus {
		return m, nil
	}

	var cmds []tea.Cmd
	if m.focus != focusGallery {
		input := m.focusedInput()
		input.Blur()
		input.SetValue(m.selector.Clamp(input.Value()))
		changed := input.Value() != m.editOrigin
		m.focus = focusGallery
		if changed {
			var cmd tea.Cmd
			m, cmd = m.dispatch(gallery.InputsChanged{Start: m.startInput.Value(), End: m.endInput.Value()})
			cmds = append(cmds, cmd)
		}
	}

	m.focus = f
	if input := m.focusedInput(); input != nil {
		m.editOrigin = input.Value()
		cmds = append(cmds, input.Focus())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) focusedInput() *textinput.Model {
	switch m.focus {
	case focusStart:
		return &m.startInput
	case focusEnd:
		return &m.endInput
	}
	return nil
}

// fetch is the "get images" action. It reads the fields as they are now,
// so a pending edit is consumed here rather than on blur.
func (m Model) fetch() (Model, tea.Cmd) {
	m.state.Inputs = gallery.Inputs{Start: m.startInput.Value(), End: m.endInput.Value()}
	if input := m.focusedInput(); input != nil {
		m.editOrigin = input.Value()
	}
	return m.dispatch(gallery.FetchRequested{})
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

func dateRunes(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
