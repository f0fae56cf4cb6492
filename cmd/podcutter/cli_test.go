package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	server     *httptest.Server
	configPath string
	stateDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /podcasts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["ep1.mp3","notes.txt"]`))
	})
	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	mux.HandleFunc("POST /splice", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Filename string `json:"filename"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Filename == "bad.mp3" {
			http.Error(w, "no analysis file", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"output_filename":"ep1_no_ads.mp3"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	stateDir := filepath.Join(base, "state")
	configPath := filepath.Join(base, "config.toml")
	body := "api_url = \"" + server.URL + "\"\nstate_dir = \"" + stateDir + "\"\nlog_level = \"error\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{server: server, configPath: configPath, stateDir: stateDir}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestListCommand_PlainWhenPiped(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out != "ep1.mp3\nnotes.txt\n" {
		t.Fatalf("list output = %q", out)
	}
}

func TestListCommand_JSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "list", "--json")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var got []listedPodcast
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := []listedPodcast{{"ep1.mp3", true}, {"notes.txt", false}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("list --json = %+v, want %+v", got, want)
	}
}

func TestListCommand_Table(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "list", "--table")
	if err != nil {
		t.Fatalf("list --table: %v", err)
	}
	for _, want := range []string{"Filename", "ep1.mp3", "analyze, splice", "notes.txt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestListCommand_Unreachable(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := env.run(t, "--api", "http://127.0.0.1:1", "list")
	if err == nil {
		t.Fatal("list against a closed port returned nil error")
	}
}

func TestAnalyzeCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "analyze", "ep1.mp3")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "Analysis of ep1.mp3 complete.") {
		t.Fatalf("analyze output = %q", out)
	}
}

func TestSpliceCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "splice", "ep1.mp3")
	if err != nil {
		t.Fatalf("splice: %v", err)
	}
	if !strings.Contains(out, "Saved as ep1_no_ads.mp3") {
		t.Fatalf("splice output = %q", out)
	}
}

func TestSpliceCommand_FailureExitsNonZero(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := env.run(t, "splice", "bad.mp3")
	if err == nil {
		t.Fatal("splice of bad.mp3 returned nil error")
	}
	if out != "" {
		t.Fatalf("stdout = %q, want empty on failure", out)
	}
	if !strings.Contains(stderr, "Removing ads from bad.mp3 failed") {
		t.Fatalf("stderr = %q, want failure status", stderr)
	}
}

func TestSpliceCommand_JSONFailure(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "splice", "--json", "bad.mp3")
	if err == nil {
		t.Fatal("splice --json of bad.mp3 returned nil error")
	}
	var got actionResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.OK || got.Action != "splice" || got.Filename != "bad.mp3" || got.Error == "" {
		t.Fatalf("result = %+v", got)
	}
}

func TestHistoryCommand_ListsRecordedActions(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := env.run(t, "analyze", "ep1.mp3"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	_, _, _ = env.run(t, "splice", "bad.mp3")

	out, _, err := env.run(t, "history", "--json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var got []historyRecord
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got) != 2 {
		t.Fatalf("history has %d entries, want 2", len(got))
	}
	seen := map[string]bool{}
	for _, r := range got {
		seen[r.Action+":"+r.Filename] = r.OK
	}
	if ok, found := seen["analyze:ep1.mp3"]; !found || !ok {
		t.Fatalf("history = %+v, want successful analyze of ep1.mp3", got)
	}
	if ok, found := seen["splice:bad.mp3"]; !found || ok {
		t.Fatalf("history = %+v, want failed splice of bad.mp3", got)
	}

	table, _, err := env.run(t, "history", "--limit", "1")
	if err != nil {
		t.Fatalf("history --limit: %v", err)
	}
	if !strings.Contains(table, "Action") || strings.Count(table, ".mp3") != 1 {
		t.Fatalf("history --limit 1 output:\n%s", table)
	}
}

func TestHistoryCommand_Empty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No actions recorded yet.") {
		t.Fatalf("history output = %q", out)
	}
}

func TestRenderTable(t *testing.T) {
	if got := renderTable(nil, nil, nil); got != "" {
		t.Fatalf("renderTable with no headers = %q, want empty", got)
	}
	out := renderTable([]string{"#", "Name"}, [][]string{{"1"}}, []columnAlignment{alignRight})
	if !strings.Contains(out, "Name") || !strings.Contains(out, "1") {
		t.Fatalf("renderTable output:\n%s", out)
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Fatal("bytes.Buffer reported as a terminal")
	}
}

func TestAnalyzeCommand_ReloadFailureStillReportsCompletion(t *testing.T) {
	env := setupCLITestEnv(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /podcasts", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "listing unavailable", http.StatusServiceUnavailable)
	})
	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	out, _, err := env.run(t, "--api", server.URL, "analyze", "ep1.mp3", "--json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var got actionResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !got.OK || got.Status != "Analysis of ep1.mp3 complete." {
		t.Fatalf("result = %+v, want ok with completion status", got)
	}

	out, _, err = env.run(t, "--api", server.URL, "analyze", "ep1.mp3")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out != "Analysis of ep1.mp3 complete.\n" {
		t.Fatalf("analyze output = %q, want completion only", out)
	}
}
