package ui

import (
	"errors"
	"strings"
	"testing"

	"genmark/internal/driver"
)

func TestApplyEventTracksFiles(t *testing.T) {
	m := NewProgressModel("diag", []string{"a.toml", "b.toml"}, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.toml", Stage: driver.StageLoad, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "loading" {
		t.Fatalf("status = %q, want loading", got)
	}
	m.applyEvent(driver.Event{File: "a.toml", Stage: driver.StageInspect, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.toml", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("boom")})
	// late events for a finished file are ignored
	m.applyEvent(driver.Event{File: "b.toml", Stage: driver.StageInspect, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "unknown.toml", Stage: driver.StageLoad, Status: driver.StatusDone})

	if m.completed != 1 || m.failed != 1 {
		t.Errorf("completed = %d, failed = %d", m.completed, m.failed)
	}
	if got := m.items[1].status; got != "error" {
		t.Errorf("b status = %q", got)
	}
	if got := m.percent(); got != 1 {
		t.Errorf("percent = %v, want 1", got)
	}
}

func TestPercentPartial(t *testing.T) {
	m := NewProgressModel("diag", []string{"a.toml", "b.toml"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.toml", Stage: driver.StageInspect, Status: driver.StatusWorking})
	if got := m.percent(); got != 0.3 {
		t.Errorf("percent = %v, want 0.3", got)
	}
}

func TestViewDone(t *testing.T) {
	m := NewProgressModel("diag", []string{"models/a.toml"}, nil).(*progressModel)
	m.applyEvent(driver.Event{Stage: driver.StageInspect, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "models/a.toml", Stage: driver.StageInspect, Status: driver.StatusDone})
	m.done = true
	view := m.View()
	for _, want := range []string{"done: diag, 1/1 files", "models/a.toml"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"abcdef", 2, "ab"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
