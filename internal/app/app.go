package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/five82/podcutter/internal/config"
	"github.com/five82/podcutter/internal/history"
	"github.com/five82/podcutter/internal/logging"
	"github.com/five82/podcutter/internal/podcasts"
	"github.com/five82/podcutter/internal/podlist"
	"github.com/five82/podcutter/internal/prefs"
	"github.com/five82/podcutter/internal/state"
	"github.com/five82/podcutter/internal/ui"
)

// Options configure the podcutter application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/podcutter/prefs.toml
	APIURL     string // overrides api_url from the config file
}

// Env is everything an entry point needs to drive the podcast list.
type Env struct {
	Config  config.Config
	Client  *podcasts.Client
	View    *podlist.View
	History *history.Store // nil when the journal could not be opened
	Logger  *log.Logger

	closers []io.Closer
}

// Open loads configuration and builds the client, lock, journal and view.
// When logger is nil the log goes to the config's log file.
func Open(opts Options, logger *log.Logger) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(opts.APIURL) != "" {
		cfg.APIURL = strings.TrimSpace(opts.APIURL)
	}
	if err := cfg.EnsureStateDir(); err != nil {
		return nil, err
	}

	env := &Env{Config: cfg}

	if logger == nil {
		fileLogger, closer, err := logging.OpenFile(cfg.LogPath(), cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		logger = fileLogger
		env.closers = append(env.closers, closer)
	}
	env.Logger = logger

	client, err := podcasts.NewClient(cfg.APIURL, nil)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init podcast client: %w", err)
	}
	env.Client = client

	viewOpts := podlist.Options{
		AudioSuffix:   cfg.AudioSuffix,
		ListTimeout:   cfg.ListTimeout,
		ActionTimeout: cfg.ActionTimeout,
		Logger:        logger,
		Lock:          flock.New(cfg.LockPath()),
	}

	journal, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logger.Warn("action history disabled", "path", cfg.HistoryPath(), "err", err)
	} else {
		env.History = journal
		env.closers = append(env.closers, journal)
		viewOpts.History = journal
	}

	env.View = podlist.New(client, state.NewStore(podlist.StatusLoading), viewOpts)
	logger.Debug("podcutter ready", "api", client.BaseURL(), "state_dir", cfg.StateDir)
	return env, nil
}

// Close releases the journal and log file in reverse order of opening.
func (e *Env) Close() error {
	if e == nil {
		return nil
	}
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Run boots the podcutter TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	userPrefs := prefs.Load(opts.PrefsPath)

	StartPoller(ctx, env.View, env.Config.RefreshEvery, env.Logger)

	env.Logger.Info("tui started", "api", env.Client.BaseURL())
	err = ui.Run(ui.Options{
		Context:   ctx,
		View:      env.View,
		APIURL:    env.Client.BaseURL(),
		LogPath:   env.Config.LogPath(),
		ThemeName: userPrefs.Theme,
		ShowLog:   userPrefs.ShowLog,
		PrefsPath: opts.PrefsPath,
	})
	env.Logger.Info("tui stopped")
	return err
}
