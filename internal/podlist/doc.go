// Package podlist implements the podcast list view: fetching the listing and
// running the analyze and splice actions against the API.
//
// # State Machine
//
// Each action moves the view through idle -> processing(file) -> idle:
//
//	Begin(file)         marker set, "in progress" status
//	  call API          POST /analyze or /splice
//	  success           completion status, LoadListing once
//	  failure           failure status naming the file
//	Finish()            marker cleared (always last)
//
// There is one marker for the whole list. While it is set, Analyze and Splice
// return ErrBusy without sending a request and without touching the status.
//
// # Cross-Process Lock
//
// When Options.Lock is set (a gofrs/flock file lock in production), the lock
// is taken after the in-process marker and released before it is cleared. A
// held lock turns the action into a no-op with StatusLockHeld.
//
// # Logging and History
//
// Every action gets a UUID that is logged, sent as X-Request-ID and used as the
// history entry ID. History failures are logged and otherwise ignored.
package podlist
