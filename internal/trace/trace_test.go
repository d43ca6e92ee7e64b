package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("ParseLevel(verbose) succeeded")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	root := Begin(tr, ScopeDriver, "diag", 0)
	pass := Begin(tr, ScopePass, "inspect", root.ID())
	Begin(tr, ScopeNode, "hidden", pass.ID()).End("")
	pass.WithExtra("problems", "2").End("done")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != "end" || ev.Name != "inspect" || ev.Detail != "done" || ev.Extra["problems"] != "2" || ev.ParentID != root.ID() {
		t.Errorf("unexpected end event: %+v", ev)
	}
}

func TestPointAndText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	Point(tr, ScopeNode, "analyzer.failure", 7, "boom", map[string]string{"b": "2", "a": "1"})
	out := buf.String()
	if !strings.Contains(out, "• analyzer.failure (boom) {a=1, b=2}") {
		t.Errorf("text output = %q", out)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: string(rune('a' + i))})
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil || strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("Dump = %q, %v", buf.String(), err)
	}
}

func TestRingAtErrorLevelKeepsEverything(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: "n"})
	if len(r.Snapshot()) != 1 {
		t.Errorf("error-level ring dropped a node event")
	}
}

func TestNewAndContext(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New(both): %v", err)
	}
	m, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("ModeBoth returned %T", tr)
	}
	if _, ok := m.Ring(); !ok {
		t.Errorf("ModeBoth has no ring")
	}

	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Errorf("FromContext lost the tracer")
	}
	if FromContext(context.Background()) != Nop {
		t.Errorf("empty context should yield Nop")
	}
	span := Begin(tr, ScopePass, "p", 0)
	if CurrentSpan(WithSpan(ctx, span)) != span.ID() {
		t.Errorf("span id not propagated")
	}
	if _, err := New(Config{Level: LevelPhase, Mode: 42}); err == nil {
		t.Errorf("unknown mode accepted")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Errorf("no heartbeat recorded")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Errorf("heartbeat started on Nop")
	}
}

func TestParseModeAndFormat(t *testing.T) {
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(both) = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Errorf("ParseMode(disk) succeeded")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Errorf("ParseFormat(chrome) succeeded")
	}
}
