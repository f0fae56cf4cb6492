package ui

import "time"

// Terminal layout thresholds.
const (
	// LayoutCompactWidth is the width below which row buttons drop their labels.
	LayoutCompactWidth = 60

	// LogPaneMinHeight is the smallest log pane worth drawing.
	LogPaneMinHeight = 4
)

// Log pane limits.
const (
	// LogTailLines is how many lines of the client log the pane keeps.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is how often the model re-reads the store and log.
	DefaultUIInterval = 250 * time.Millisecond

	// RefreshMinInterval throttles the manual refresh key.
	RefreshMinInterval = time.Second
)
