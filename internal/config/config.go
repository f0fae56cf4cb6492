package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds podcutter's runtime settings.
type Config struct {
	APIURL        string
	AudioSuffix   string
	ListTimeout   time.Duration
	ActionTimeout time.Duration
	RefreshEvery  time.Duration
	StateDir      string
	LogLevel      string
}

const (
	defaultConfigPath  = "~/.config/podcutter/config.toml"
	defaultStateDir    = "~/.local/share/podcutter"
	defaultAPIURL      = "http://127.0.0.1:8000"
	defaultAudioSuffix = ".mp3"
	defaultListTimeout = 10 * time.Second
	defaultLogLevel    = "info"
	logFileName        = "podcutter.log"
	historyFileName    = "history.db"
	actionLockFileName = "podcutter.lock"
	maxTimeoutSeconds  = 24 * 60 * 60
	maxRefreshSeconds  = 60 * 60
)

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		APIURL:      defaultAPIURL,
		AudioSuffix: defaultAudioSuffix,
		ListTimeout: defaultListTimeout,
		StateDir:    mustExpand(defaultStateDir),
		LogLevel:    defaultLogLevel,
	}
}

type fileConfig struct {
	APIURL               string `toml:"api_url"`
	AudioSuffix          string `toml:"audio_suffix"`
	ListTimeoutSeconds   *int   `toml:"list_timeout_seconds"`
	ActionTimeoutSeconds *int   `toml:"action_timeout_seconds"`
	RefreshSeconds       *int   `toml:"refresh_seconds"`
	StateDir             string `toml:"state_dir"`
	LogLevel             string `toml:"log_level"`
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.AudioSuffix); v != "" {
		if !strings.HasPrefix(v, ".") {
			v = "." + v
		}
		cfg.AudioSuffix = v
	}
	if raw.ListTimeoutSeconds != nil {
		d, err := seconds("list_timeout_seconds", *raw.ListTimeoutSeconds, maxTimeoutSeconds)
		if err != nil {
			return Config{}, err
		}
		cfg.ListTimeout = d
	}
	if raw.ActionTimeoutSeconds != nil {
		d, err := seconds("action_timeout_seconds", *raw.ActionTimeoutSeconds, maxTimeoutSeconds)
		if err != nil {
			return Config{}, err
		}
		cfg.ActionTimeout = d
	}
	if raw.RefreshSeconds != nil {
		d, err := seconds("refresh_seconds", *raw.RefreshSeconds, maxRefreshSeconds)
		if err != nil {
			return Config{}, err
		}
		cfg.RefreshEvery = d
	}
	if v := strings.TrimSpace(raw.StateDir); v != "" {
		expanded, err := expandPath(v)
		if err != nil {
			return Config{}, fmt.Errorf("state_dir: %w", err)
		}
		cfg.StateDir = expanded
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	return cfg, nil
}

// LogPath returns the client log file location.
func (c Config) LogPath() string {
	return filepath.Join(c.stateDir(), logFileName)
}

// HistoryPath returns the action journal location.
func (c Config) HistoryPath() string {
	return filepath.Join(c.stateDir(), historyFileName)
}

// LockPath returns the cross-process action lock location.
func (c Config) LockPath() string {
	return filepath.Join(c.stateDir(), actionLockFileName)
}

// EnsureStateDir creates the state directory.
func (c Config) EnsureStateDir() error {
	if err := os.MkdirAll(c.stateDir(), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	return nil
}

func (c Config) stateDir() string {
	if strings.TrimSpace(c.StateDir) == "" {
		return mustExpand(defaultStateDir)
	}
	return c.StateDir
}

func seconds(field string, value, limit int) (time.Duration, error) {
	if value < 0 || value > limit {
		return 0, fmt.Errorf("%s must be between 0 and %d, got %d", field, limit, value)
	}
	return time.Duration(value) * time.Second, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
