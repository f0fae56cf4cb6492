// Package ui is the Bubble Tea front end for the podcast list.
//
// # Model
//
// Model renders a podlist.View. It never owns view state: every tick, spinner
// frame and completed command re-reads the view's state.Store snapshot, so the
// background poller and action commands can update the store from their own
// goroutines. Network calls always run inside tea.Cmd functions.
//
// # Screen
//
//	podcutter  http://127.0.0.1:8000  ready  2 files, updated 14:02:11
//	> ep1.mp3     [a] Analyze  [s] Remove Ads
//	  notes.txt
//	Analysis of ep1.mp3 complete.
//	┌ log pane (l) ───────────────────────────────┐
//	└─────────────────────────────────────────────┘
//	a Analyze for ads • s Remove ads • r Refresh list • ...
//
// Only names ending in the audio suffix get buttons. While an action is in
// flight the processing row shows a spinner with elapsed time and every other
// button is muted; the a, s and r keys do nothing until it settles.
//
// # Keys
//
// See keys.go. T cycles themes and l toggles the log pane; both choices are
// saved to prefs.toml.
package ui
