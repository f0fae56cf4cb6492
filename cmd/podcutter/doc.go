// Command podcutter is a terminal client for the podcast ad-removal server.
//
// Run with no arguments to open the interactive list. The subcommands do the
// same work without the TUI:
//
//	podcutter list [--json] [--table]
//	podcutter analyze <file> [--json]
//	podcutter splice <file> [--json]
//	podcutter history [--limit N] [--json]
//
// All commands accept --config/-c and --api. Subcommands log to stderr; the
// TUI logs to <state_dir>/podcutter.log. The TUI and subcommands share one
// action lock, so only one analyze or splice runs at a time on this machine.
package main
