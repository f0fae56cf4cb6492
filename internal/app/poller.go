package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/podcutter/internal/podlist"
)

const maxBackoff = 30 * time.Second

// StartPoller refreshes the listing every interval until ctx is cancelled.
// Consecutive failures stretch the wait (see calculateBackoff). Ticks that land
// while an action is in flight are skipped so the in-progress status is not
// overwritten. A non-positive interval disables the poller.
func StartPoller(ctx context.Context, view *podlist.View, interval time.Duration, logger *log.Logger) {
	if interval <= 0 || view == nil {
		return
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if !view.Snapshot().Busy() {
				if err := view.LoadListing(ctx); err != nil && logger != nil {
					logger.Debug("background refresh failed", "err", err)
				}
			}

			timer.Reset(calculateBackoff(view.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
