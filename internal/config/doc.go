// Package config loads podcutter's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided (--config), use it
//  2. Otherwise, use ~/.config/podcutter/config.toml
//  3. If the file doesn't exist, use built-in defaults
//  4. Fields that are missing or empty keep their defaults
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8000"
//	audio_suffix = ".mp3"
//	list_timeout_seconds = 10
//	action_timeout_seconds = 0   # 0 = wait as long as the server needs
//	refresh_seconds = 0          # 0 = no background refresh
//	state_dir = "~/.local/share/podcutter"
//	log_level = "info"
//
// # Derived Paths
//
// Everything podcutter writes lives under state_dir:
//
//   - podcutter.log: client log (the TUI owns the terminal)
//   - history.db: SQLite journal of finished actions
//   - podcutter.lock: flock shared by the TUI and CLI actions
//
// Tilde and relative paths are expanded to absolute paths. Missing config
// files are not an error; unreadable or malformed ones are, as are timeout or
// refresh values outside their allowed range.
package config
