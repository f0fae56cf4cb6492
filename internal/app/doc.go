// Package app is the composition root for podcutter.
//
// # Overview
//
// Open loads the config file, applies the --api override, makes sure the
// state directory exists and then builds, in order:
//
//  1. the logger (the log file in TUI mode, whatever the caller passes otherwise)
//  2. the podcasts.Client for the configured origin
//  3. the flock on <state_dir>/podcutter.lock
//  4. the SQLite action journal (optional; a failure only disables history)
//  5. the podlist.View over a fresh state.Store
//
// Run uses Open, starts the optional background poller and hands the view to
// the Bubble Tea UI, blocking until the user quits. The CLI subcommands call
// Open directly with a stderr logger.
//
// # Background refresh
//
// With refresh_seconds set, StartPoller reloads the listing on a timer. Each
// consecutive failure doubles the wait, capped at 30 seconds, and the base
// interval returns after the next success. Ticks are skipped while an action
// is in flight: the listing refresh that follows an action belongs to the
// action itself.
package app
