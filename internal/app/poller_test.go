package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/podcutter/internal/podcasts"
	"github.com/five82/podcutter/internal/podlist"
	"github.com/five82/podcutter/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 80; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type pollAPI struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *pollAPI) ListPodcasts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return []string{"ep1.mp3"}, nil
}

func (p *pollAPI) Analyze(ctx context.Context, filename string) (podcasts.AnalyzeResponse, error) {
	return podcasts.AnalyzeResponse{}, nil
}

func (p *pollAPI) Splice(ctx context.Context, filename string) (podcasts.SpliceResponse, error) {
	return podcasts.SpliceResponse{}, nil
}

func (p *pollAPI) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestStartPoller_RefreshesListing(t *testing.T) {
	api := &pollAPI{}
	view := podlist.New(api, nil, podlist.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPoller(ctx, view, 10*time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for api.count() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("poller made %d calls, want at least 2", api.count())
		}
		time.Sleep(5 * time.Millisecond)
	}
	snap := view.Snapshot()
	if len(snap.Listing) != 1 || snap.Listing[0] != "ep1.mp3" {
		t.Fatalf("Listing = %v, want [ep1.mp3]", snap.Listing)
	}
}

func TestStartPoller_SkipsWhileBusy(t *testing.T) {
	api := &pollAPI{}
	store := state.NewStore(podlist.StatusLoading)
	view := podlist.New(api, store, podlist.Options{})
	if !store.Begin("ep1.mp3", state.ActionAnalyze, "Analyzing") {
		t.Fatal("Begin returned false on an idle store")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPoller(ctx, view, 5*time.Millisecond, nil)

	time.Sleep(60 * time.Millisecond)
	if got := api.count(); got != 0 {
		t.Fatalf("poller made %d calls while busy, want 0", got)
	}
	if got := view.Snapshot().Status; got != "Analyzing" {
		t.Fatalf("Status = %q, want in-progress status untouched", got)
	}
}

func TestStartPoller_DisabledInterval(t *testing.T) {
	api := &pollAPI{err: errors.New("down")}
	view := podlist.New(api, nil, podlist.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPoller(ctx, view, 0, nil)

	time.Sleep(20 * time.Millisecond)
	if got := api.count(); got != 0 {
		t.Fatalf("disabled poller made %d calls, want 0", got)
	}
}
