// Package logtail reads the tail of podcutter's own log file for the TUI log
// pane.
//
// # Reading Log Files
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) however large the log grows:
//
//	lines, err := logtail.Read(cfg.LogPath(), 200)
//
// A missing file is not an error: the log is created lazily by the first
// write.
//
// # Levels
//
// The client log is logfmt (charmbracelet/log LogfmtFormatter). Level pulls
// the level=... field out of a line so the UI can colour warnings and errors
// without parsing the whole record.
package logtail
