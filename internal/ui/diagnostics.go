package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stargaze/internal/diag"
)

type diagLoadedMsg struct {
	lines []string
	err   error
}

func loadDiagCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return diagLoadedMsg{}
		}
		lines, err := diag.Tail(path, diagTailLines)
		return diagLoadedMsg{lines: lines, err: err}
	}
}

// resetDiagViewport rebuilds the log viewport and scrolls to the newest line.
func (m *Model) resetDiagViewport() {
	styles := m.theme.Styles()
	width := max(20, m.width-6)
	height := max(3, m.height-8)

	var body string
	switch {
	case m.diagErr != nil:
		body = styles.DangerText.Render(m.diagErr.Error())
	case len(m.diagLines) == 0:
		body = styles.FaintText.Render("No log entries yet.")
	default:
		rendered := make([]string, 0, len(m.diagLines))
		for _, raw := range m.diagLines {
			rendered = append(rendered, formatLogLine(styles, raw, width))
		}
		body = strings.Join(rendered, "\n")
	}

	m.diagView = viewport.New(width, height)
	m.diagView.SetContent(body)
	m.diagView.GotoBottom()
}

// formatLogLine colours the columns of one diag log line.
func formatLogLine(styles Styles, raw string, width int) string {
	line := diag.ParseLine(raw)
	if line.Level == "" {
		return styles.FaintText.Render(truncate(raw, width))
	}
	msg := line.Message
	if line.Fields != "" {
		msg += " " + line.Fields
	}
	prefix := line.Time + " " + padRight(line.Level, 5) + " "
	return styles.MutedText.Render(line.Time) + " " +
		styles.LevelStyle(line.Level).Render(padRight(line.Level, 5)) + " " +
		styles.Text.Render(truncate(msg, width-lipgloss.Width(prefix)))
}

// renderDiagnostics renders the log tail overlay.
func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Diagnostics") + "  " +
		styles.FaintText.Render(truncate(m.logPath, max(10, m.width-24)))
	hint := styles.FaintText.Render("esc/L close · j/k scroll")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Render(strings.Join([]string{title, "", m.diagView.View(), "", hint}, "\n"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
