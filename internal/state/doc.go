// Package state holds the podcast list view state shared between action
// commands and the UI.
//
// # Overview
//
// The view has three pieces of state:
//
//   - Listing: filenames from the last successful fetch, in server order
//   - Status: the single user-facing message (may be empty)
//   - Processing: the filename of the one in-flight action, or empty
//
// Listing and Status are independent. A completion status can be visible
// before the refreshed listing arrives.
//
// # Concurrency Model
//
// Action commands run on Bubble Tea command goroutines while the UI reads
// snapshots from its update loop. Store guards everything with a
// sync.RWMutex:
//
//   - Begin(): test-and-set of the processing marker under the write lock
//   - Finish(): unconditional clear of the marker
//   - Snapshot(): read lock, returns defensive copies
//
// Begin is the only gate for starting an action. Two commands racing for the
// marker cannot both win, so at most one request is ever in flight.
//
// # Update Semantics
//
//	store.SetListing(names, clearable...)
//	→ Listing = names (cloned)
//	→ Status cleared only if it equals one of clearable
//	→ LastError = nil, ConsecutiveFailures = 0
//
//	store.ListingFailed(msg, err)
//	→ Listing unchanged
//	→ Status = msg, unless an action holds the marker
//	→ LastError = err, ConsecutiveFailures++
//
// # Testing Considerations
//
// The zero Store is usable; NewStore only seeds the placeholder status.
package state
