package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/five82/podcutter/internal/podlist"
	"github.com/five82/podcutter/internal/prefs"
	"github.com/five82/podcutter/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	View      *podlist.View
	APIURL    string // shown in the header
	LogPath   string // client log tailed by the log pane
	ThemeName string
	ShowLog   bool
	PrefsPath string
	Tick      time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	view      *podlist.View
	apiURL    string
	logPath   string
	prefsPath string
	tick      time.Duration

	keys    keyMap
	refresh *rate.Limiter
	help    help.Model
	spinner spinner.Model
	theme   Theme

	width  int
	height int
	ready  bool

	snapshot state.Snapshot
	selected int
	offset   int

	showHelp bool
	showLog  bool
	logView  viewport.Model
	logLines []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.ThemeName)

	m := Model{
		ctx:       ctx,
		view:      opts.View,
		apiURL:    opts.APIURL,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		tick:      tick,
		keys:      DefaultKeyMap(),
		refresh:   rate.NewLimiter(rate.Every(RefreshMinInterval), 1),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		showLog:   opts.ShowLog,
		logView:   viewport.New(0, 0),
	}
	m.applyTheme(theme)
	if m.view != nil {
		m.snapshot = m.view.Snapshot()
	}
	return m
}

// Init implements tea.Model. The listing is fetched once on start.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadListingCmd(m.ctx, m.view),
		m.spinner.Tick,
		tickCmd(m.tick),
	}
	if m.showLog {
		cmds = append(cmds, readLogCmd(m.logPath))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.layoutLog()
		m.ensureVisible()
		return m, nil

	case tickMsg:
		m.refreshSnapshot()
		cmds := []tea.Cmd{tickCmd(m.tick)}
		if m.showLog {
			cmds = append(cmds, readLogCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshSnapshot()
		return m, cmd

	case listingMsg:
		m.refreshSnapshot()
		return m, nil

	case actionDoneMsg:
		m.refreshSnapshot()
		if m.showLog {
			return m, readLogCmd(m.logPath)
		}
		return m, nil

	case logLinesMsg:
		if msg.err == nil {
			m.setLogLines(msg.lines)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Close):
		if m.showLog {
			m.showLog = false
			m.layoutLog()
			m.savePrefs()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleLog):
		m.showLog = !m.showLog
		m.layoutLog()
		m.ensureVisible()
		m.savePrefs()
		if m.showLog {
			return m, readLogCmd(m.logPath)
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.view == nil || m.view.Snapshot().Busy() || !m.refresh.Allow() {
			return m, nil
		}
		return m, loadListingCmd(m.ctx, m.view)

	case key.Matches(msg, m.keys.Analyze):
		return m, m.startAction(state.ActionAnalyze)

	case key.Matches(msg, m.keys.Splice):
		return m, m.startAction(state.ActionSplice)

	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.selected - 1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.selected + 1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.moveTo(0)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(len(m.snapshot.Listing) - 1)
		return m, nil
	}

	if m.showLog {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

// startAction returns the command for action on the selected row, or nil when
// the row has no controls or another action is in flight.
func (m Model) startAction(action state.Action) tea.Cmd {
	name, ok := m.selectedName()
	if !ok || m.view == nil || !m.view.Actionable(name) {
		return nil
	}
	if m.view.Snapshot().Busy() {
		return nil
	}
	return actionCmd(m.ctx, m.view, action, name)
}

func (m Model) selectedName() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.snapshot.Listing) {
		return "", false
	}
	return m.snapshot.Listing[m.selected], true
}

func (m *Model) refreshSnapshot() {
	if m.view == nil {
		return
	}
	m.snapshot = m.view.Snapshot()
	m.moveTo(m.selected)
}

func (m *Model) moveTo(row int) {
	last := len(m.snapshot.Listing) - 1
	if row > last {
		row = last
	}
	if row < 0 {
		row = 0
	}
	m.selected = row
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	height := m.listHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+height {
		m.offset = m.selected - height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	styles := t.Styles()
	m.spinner.Style = styles.InfoText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	if len(m.logLines) > 0 {
		m.setLogLines(m.logLines)
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, ShowLog: m.showLog})
}

// Messages

type tickMsg time.Time

type listingMsg struct{ err error }

type actionDoneMsg struct {
	action   state.Action
	filename string
	output   string
	err      error
}

type logLinesMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadListingCmd(ctx context.Context, view *podlist.View) tea.Cmd {
	if view == nil {
		return nil
	}
	return func() tea.Msg {
		return listingMsg{err: view.LoadListing(ctx)}
	}
}

func actionCmd(ctx context.Context, view *podlist.View, action state.Action, filename string) tea.Cmd {
	return func() tea.Msg {
		msg := actionDoneMsg{action: action, filename: filename}
		switch action {
		case state.ActionSplice:
			msg.output, msg.err = view.Splice(ctx, filename)
		default:
			msg.err = view.Analyze(ctx, filename)
		}
		return msg
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Cancelling the
// context stops the program without an error.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
