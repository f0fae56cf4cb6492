package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/podcutter/internal/logtail"
)

func readLogCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// logPaneHeight includes the border. Zero when hidden or the terminal is too
// short to fit it beside a list row.
func (m Model) logPaneHeight() int {
	if !m.showLog {
		return 0
	}
	h := (m.height - chrome) / 3
	if h < LogPaneMinHeight {
		h = LogPaneMinHeight
	}
	if m.height-chrome-h < 1 {
		return 0
	}
	return h
}

func (m *Model) layoutLog() {
	h := m.logPaneHeight()
	if h == 0 {
		return
	}
	m.logView.Width = max(m.width-2, 1)
	m.logView.Height = max(h-2, 1)
	m.setLogLines(m.logLines)
}

func (m *Model) setLogLines(lines []string) {
	m.logLines = lines
	styles := m.theme.Styles()

	if len(lines) == 0 {
		m.logView.SetContent(styles.MutedText.Render("Log is empty."))
		return
	}

	atBottom := m.logView.AtBottom() || m.logView.TotalLineCount() == 0
	colored := make([]string, len(lines))
	for i, line := range lines {
		colored[i] = styles.LevelStyle(logtail.Level(line)).Render(line)
	}
	m.logView.SetContent(strings.Join(colored, "\n"))
	if atBottom {
		m.logView.GotoBottom()
	}
}

func (m Model) renderLogPane() string {
	if m.logPaneHeight() == 0 {
		return ""
	}
	styles := m.theme.Styles()
	return styles.Pane.Width(max(m.width-2, 1)).Render(m.logView.View())
}
