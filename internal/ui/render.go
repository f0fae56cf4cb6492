package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/podcutter/internal/podlist"
	"github.com/five82/podcutter/internal/state"
)

// chrome is the header, status and footer lines around the list.
const chrome = 3

func (m Model) renderMain() string {
	lines := []string{m.renderHeader()}
	lines = append(lines, m.renderList(m.listHeight())...)
	lines = append(lines, m.renderStatus())
	if pane := m.renderLogPane(); pane != "" {
		lines = append(lines, pane)
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m Model) listHeight() int {
	h := m.height - chrome - m.logPaneHeight()
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	b := newBar(m.theme.Surface)

	label, tone := "ready", styles.SuccessText
	switch {
	case m.snapshot.Busy():
		label, tone = "busy", styles.InfoText
	case m.snapshot.IsOffline():
		label, tone = "offline", styles.DangerText
	case !m.snapshot.Loaded:
		label, tone = "connecting", styles.MutedText
	}

	parts := []string{b.segment("podcutter", styles.Logo)}
	if m.apiURL != "" {
		parts = append(parts, b.segment(m.apiURL, styles.MutedText))
	}
	parts = append(parts, b.segment(label, tone))
	if !m.snapshot.LastUpdated.IsZero() {
		updated := fmt.Sprintf("%d files, updated %s", len(m.snapshot.Listing), m.snapshot.LastUpdated.Format("15:04:05"))
		parts = append(parts, b.segment(updated, styles.FaintText))
	}
	return b.fill(b.join(parts, "  "), m.width)
}

// renderList returns exactly height lines.
func (m Model) renderList(height int) []string {
	styles := m.theme.Styles()
	lines := make([]string, 0, height)

	listing := m.snapshot.Listing
	if len(listing) == 0 && m.snapshot.Loaded {
		lines = append(lines, styles.MutedText.Render("  No podcasts found."))
	}
	for i := m.offset; i < len(listing) && len(lines) < height; i++ {
		lines = append(lines, m.renderRow(i, listing[i]))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func (m Model) renderRow(i int, name string) string {
	styles := m.theme.Styles()
	controls := m.rowControls(name)

	if m.width > 0 {
		limit := m.width - lipgloss.Width(controls) - 4
		name = fitName(name, max(limit, 8))
	}

	var label string
	if i == m.selected {
		label = styles.Selected.Render("> " + name)
	} else {
		label = styles.Text.Render("  " + name)
	}

	if controls == "" {
		return label
	}
	return label + "  " + controls
}

// rowControls renders the action buttons for audio files: the spinner and a
// progress label on the processing row, muted buttons on the others while
// busy, and nothing for non-audio names.
func (m Model) rowControls(name string) string {
	if m.view == nil || !m.view.Actionable(name) {
		return ""
	}
	styles := m.theme.Styles()

	if m.snapshot.Processing == name {
		progress := "Analyzing…"
		if m.snapshot.Action == state.ActionSplice {
			progress = "Removing ads…"
		}
		if !m.snapshot.ActionStarted.IsZero() {
			progress += " " + humanizeDuration(time.Since(m.snapshot.ActionStarted))
		}
		return m.spinner.View() + " " + styles.InfoText.Render(progress)
	}

	button := styles.Button
	if m.snapshot.Busy() {
		button = styles.ButtonDisabled
	}
	analyze, splice := "[a] Analyze", "[s] Remove Ads"
	if m.width > 0 && m.width < LayoutCompactWidth {
		analyze, splice = "[a]", "[s]"
	}
	return button.Render(analyze) + " " + button.Render(splice)
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	status := m.snapshot.Status

	tone := styles.Text
	switch {
	case m.snapshot.Busy():
		tone = styles.InfoText
	case status == podlist.StatusUnreachable:
		tone = styles.DangerText
	case status == podlist.StatusLockHeld:
		tone = styles.WarningText
	}
	if m.width > 0 {
		tone = tone.MaxWidth(m.width)
	}
	return tone.Render(status)
}
