package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tc := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{" WARN ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}
	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "file", "ep1.mp3")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "ep1.mp3") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestOpenFile_AppendsLogfmt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "podcutter.log")

	logger, closer, err := OpenFile(path, "info")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	logger.Error("analyze failed", "file", "ep1.mp3")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `msg="analyze failed"`) || !strings.Contains(string(data), "file=ep1.mp3") {
		t.Fatalf("log file = %q, want logfmt entry", data)
	}
}

func TestOpenFile_EmptyPath(t *testing.T) {
	if _, _, err := OpenFile("", "info"); err == nil {
		t.Fatal("OpenFile(\"\") returned nil error")
	}
}
