package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/podcutter/internal/logging"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestOpen_WiresViewAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/podcasts":
			_, _ = w.Write([]byte(`["ep1.mp3","notes.txt"]`))
		case "/analyze":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	stateDir := t.TempDir()
	cfgPath := writeConfig(t, "api_url = \"http://127.0.0.1:1\"\nstate_dir = \""+stateDir+"\"\n")

	env, err := Open(Options{ConfigPath: cfgPath, APIURL: srv.URL}, logging.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer env.Close()

	if env.Client.BaseURL() != srv.URL {
		t.Fatalf("BaseURL = %q, want --api override %q", env.Client.BaseURL(), srv.URL)
	}
	if env.History == nil {
		t.Fatal("History = nil, want journal opened in state dir")
	}

	ctx := context.Background()
	if err := env.View.Analyze(ctx, "ep1.mp3"); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	entries, err := env.History.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Filename != "ep1.mp3" || !entries[0].OK {
		t.Fatalf("history = %+v, want one successful ep1.mp3 entry", entries)
	}
	if got := env.View.Snapshot().Listing; len(got) != 2 {
		t.Fatalf("Listing = %v, want refreshed after analyze", got)
	}
	if _, err := os.Stat(filepath.Join(stateDir, "history.db")); err != nil {
		t.Fatalf("history.db not created: %v", err)
	}
}

func TestOpen_DefaultsToFileLogger(t *testing.T) {
	stateDir := t.TempDir()
	cfgPath := writeConfig(t, "state_dir = \""+stateDir+"\"\nlog_level = \"debug\"\n")

	env, err := Open(Options{ConfigPath: cfgPath}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := env.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(stateDir, "podcutter.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty, want the ready line at debug level")
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfgPath := writeConfig(t, "list_timeout_seconds = -5\n")
	if _, err := Open(Options{ConfigPath: cfgPath}, logging.Discard()); err == nil {
		t.Fatal("Open returned nil error for invalid config")
	}
}
