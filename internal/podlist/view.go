package podlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/five82/podcutter/internal/history"
	"github.com/five82/podcutter/internal/logging"
	"github.com/five82/podcutter/internal/podcasts"
	"github.com/five82/podcutter/internal/state"
)

// DefaultAudioSuffix is the suffix that exposes action controls.
const DefaultAudioSuffix = ".mp3"

var (
	// ErrBusy is returned when an action is requested while another is in flight.
	ErrBusy = errors.New("another action is in progress")
	// ErrLocked is returned when another process holds the action lock.
	ErrLocked = errors.New("action lock held by another process")
	// ErrNoFilename is returned for a blank filename; no state changes.
	ErrNoFilename = errors.New("filename required")
)

// Locker guards actions across processes. *flock.Flock satisfies it.
type Locker interface {
	TryLock() (bool, error)
	Unlock() error
}

// Recorder journals finished actions. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// Options configure a View.
type Options struct {
	AudioSuffix   string
	ListTimeout   time.Duration // zero means no timeout
	ActionTimeout time.Duration // zero means no timeout
	Logger        *log.Logger
	Lock          Locker
	History       Recorder
}

// View is the podcast list: the listing, the status message and the single
// processing marker, plus the three calls that change them.
type View struct {
	api   podcasts.API
	store *state.Store
	opts  Options
	log   *log.Logger
}

// New builds a View. A nil store starts with the loading placeholder.
func New(api podcasts.API, store *state.Store, opts Options) *View {
	if store == nil {
		store = state.NewStore(StatusLoading)
	}
	if strings.TrimSpace(opts.AudioSuffix) == "" {
		opts.AudioSuffix = DefaultAudioSuffix
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &View{api: api, store: store, opts: opts, log: logger}
}

// Store exposes the backing state for rendering.
func (v *View) Store() *state.Store {
	return v.store
}

// Snapshot is shorthand for Store().Snapshot().
func (v *View) Snapshot() state.Snapshot {
	return v.store.Snapshot()
}

// Actionable reports whether name gets analyze/splice controls.
func (v *View) Actionable(name string) bool {
	return HasAudioSuffix(name, v.opts.AudioSuffix)
}

// HasAudioSuffix matches suffix case-insensitively.
func HasAudioSuffix(name, suffix string) bool {
	if suffix == "" {
		suffix = DefaultAudioSuffix
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), strings.ToLower(suffix))
}

// LoadListing fetches the filenames and replaces the listing. A success clears
// the loading and unreachable messages. On failure the listing is kept, the
// status becomes StatusUnreachable unless an action is in flight, and the
// error is returned.
func (v *View) LoadListing(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, v.opts.ListTimeout)
	defer cancel()

	names, err := v.api.ListPodcasts(ctx)
	if err != nil {
		v.log.Error("load podcast list failed", "err", err)
		v.store.ListingFailed(StatusUnreachable, err)
		return fmt.Errorf("load listing: %w", err)
	}
	v.log.Debug("podcast list loaded", "count", len(names))
	v.store.SetListing(names, StatusLoading, StatusUnreachable)
	return nil
}

// Analyze asks the server to detect ads in filename. It returns ErrBusy
// without sending anything while another action is in flight.
func (v *View) Analyze(ctx context.Context, filename string) error {
	_, err := v.run(ctx, state.ActionAnalyze, filename, func(ctx context.Context) (string, error) {
		_, err := v.api.Analyze(ctx, filename)
		return "", err
	})
	return err
}

// Splice asks the server to remove the detected ads from filename and returns
// the output filename it reports.
func (v *View) Splice(ctx context.Context, filename string) (string, error) {
	return v.run(ctx, state.ActionSplice, filename, func(ctx context.Context) (string, error) {
		resp, err := v.api.Splice(ctx, filename)
		return resp.OutputFilename, err
	})
}

// run drives idle -> processing(file) -> idle for one action. Clearing the
// marker is always the last state change.
func (v *View) run(ctx context.Context, action state.Action, filename string, call func(context.Context) (string, error)) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", ErrNoFilename
	}
	if !v.store.Begin(filename, action, progressStatus(action, filename)) {
		v.log.Debug("action ignored, another is in flight", "action", action, "file", filename)
		return "", ErrBusy
	}
	defer v.store.Finish()

	if v.opts.Lock != nil {
		ok, err := v.opts.Lock.TryLock()
		if err != nil || !ok {
			if err != nil {
				v.log.Warn("acquire action lock failed", "err", err)
			}
			v.store.SetStatus(StatusLockHeld)
			return "", ErrLocked
		}
		defer func() {
			if err := v.opts.Lock.Unlock(); err != nil {
				v.log.Warn("release action lock failed", "err", err)
			}
		}()
	}

	id := uuid.NewString()
	logger := v.log.With("action", action, "file", filename, "request_id", id)
	logger.Info("action started")
	started := time.Now()

	callCtx, cancel := withTimeout(podcasts.WithRequestID(ctx, id), v.opts.ActionTimeout)
	output, err := call(callCtx)
	cancel()

	entry := history.Entry{
		ID:         id,
		Action:     string(action),
		Filename:   filename,
		OK:         err == nil,
		Output:     output,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}

	if err != nil {
		logger.Error("action failed", "err", err, "elapsed", entry.Duration())
		entry.Error = err.Error()
		v.store.SetStatus(failedStatus(action, filename))
		v.record(ctx, entry)
		return "", fmt.Errorf("%s %s: %w", action, filename, err)
	}

	logger.Info("action finished", "output", output, "elapsed", entry.Duration())
	v.store.SetStatus(DoneStatus(action, filename, output))
	// A refresh failure is already reflected in the status and the log.
	_ = v.LoadListing(ctx)
	v.record(ctx, entry)
	return output, nil
}

func (v *View) record(ctx context.Context, entry history.Entry) {
	if v.opts.History == nil {
		return
	}
	if err := v.opts.History.Record(context.WithoutCancel(ctx), entry); err != nil {
		v.log.Warn("record action history failed", "err", err)
	}
}

func progressStatus(action state.Action, filename string) string {
	if action == state.ActionSplice {
		return splicingStatus(filename)
	}
	return analyzingStatus(filename)
}

// DoneStatus is the status shown after action on filename succeeds.
func DoneStatus(action state.Action, filename, output string) string {
	if action == state.ActionSplice {
		return splicedStatus(filename, output)
	}
	return analyzedStatus(filename)
}

func failedStatus(action state.Action, filename string) string {
	if action == state.ActionSplice {
		return spliceFailedStatus(filename)
	}
	return analyzeFailedStatus(filename)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
