package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/stargaze/internal/apod"
	"github.com/five82/stargaze/internal/daterange"
	"github.com/five82/stargaze/internal/gallery"
	"github.com/five82/stargaze/internal/prefs"
)

// focus is the element receiving keyboard input.
type focus int

const (
	focusGallery focus = iota
	focusStart
	focusEnd
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Client     apod.Fetcher
	Controller *gallery.Controller
	Selector   *daterange.Selector
	Logger     *zap.Logger
	Timeout    time.Duration
	Prefs      prefs.Prefs
	PrefsPath  string
	LogPath    string

	// Start and End replace the selector's default window when both are set.
	Start string
	End   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    apod.Fetcher
	ctrl      gallery.Controller
	selector  daterange.Selector
	logger    *zap.Logger
	timeout   time.Duration
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Gallery state, owned by the controller
	state gallery.State

	// Form
	focus      focus
	startInput textinput.Model
	endInput   textinput.Model
	editOrigin string

	// Card selection
	selected int
	offset   int

	spinner spinner.Model
	help    help.Model

	// Overlays
	showHelp  bool
	detail    viewport.Model
	showDiag  bool
	diagLines []string
	diagErr   error
	diagView  viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctrl := gallery.NewController(nil, 0)
	if opts.Controller != nil {
		ctrl = *opts.Controller
	}

	selector := daterange.New(0, nil)
	if opts.Selector != nil {
		selector = *opts.Selector
	}

	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Defaults()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	start, end := opts.Start, opts.End
	if start == "" && end == "" {
		start, end = selector.Default()
	}

	theme := GetTheme(p.Theme)
	m := Model{
		ctx:        ctx,
		client:     opts.Client,
		ctrl:       ctrl,
		selector:   selector,
		logger:     logger,
		timeout:    timeout,
		prefs:      p,
		prefsPath:  prefsPath,
		logPath:    opts.LogPath,
		keys:       DefaultKeyMap(),
		theme:      theme,
		state:      ctrl.Init(gallery.Inputs{Start: start, End: end}),
		focus:      focusGallery,
		startInput: newDateInput(start),
		endInput:   newDateInput(end),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:       help.New(),
	}
	m.applyTheme()
	return m
}

func newDateInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(apod.DateLayout)
	ti.Width = len(apod.DateLayout)
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	ti.Blur()
	return ti
}

// applyTheme pushes theme colors into the bubbles components.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.MutedText
	m.help.Styles.FullSeparator = styles.FaintText
	m.startInput.PlaceholderStyle = styles.FaintText
	m.endInput.PlaceholderStyle = styles.FaintText
}

// Init implements tea.Model. The gallery's first load is driven by
// PageLoaded rather than a timer.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return gallery.PageLoaded{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.ensureVisible()
		if m.state.Modal.Visible() {
			m.resetDetailViewport()
		}
		if m.showDiag {
			m.resetDiagViewport()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case diagLoadedMsg:
		m.diagLines = msg.lines
		m.diagErr = msg.err
		m.resetDiagViewport()
		return m, nil

	case gallery.Event:
		return m.dispatch(msg)
	}

	return m, nil
}

// dispatch feeds ev to the controller and turns the resulting effects into
// commands.
func (m Model) dispatch(ev gallery.Event) (Model, tea.Cmd) {
	if ev == nil {
		return m, nil
	}
	wasLoading := m.state.Loading()
	wasOpen := m.state.Modal.Visible()

	var effects []gallery.Effect
	m.state, effects = m.ctrl.Update(m.state, ev)

	if wasLoading && !m.state.Loading() {
		m.selected, m.offset = 0, 0
	}
	if !wasOpen && m.state.Modal.Visible() {
		m.resetDetailViewport()
	}

	cmds := m.runEffects(effects)
	if !wasLoading && m.state.Loading() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.state.Modal.Visible() {
		return m.renderDetail()
	}
	if m.showDiag {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

// renderMain renders the header, form, fact panel, gallery and footer.
func (m Model) renderMain() string {
	styles := m.theme.Styles()
	parts := []string{m.renderHeader(), m.renderForm()}
	if m.prefs.FactVisible() {
		parts = append(parts, m.renderFact())
	}
	rule := styles.FaintText.Render(repeatRule(m.width))
	parts = append(parts, rule, m.renderGallery(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
