package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"genmark/internal/analyzer"
	"genmark/internal/ast"
	"genmark/internal/diag"
	"genmark/internal/observ"
	"genmark/internal/project"
	"genmark/internal/testkit"
)

const baseModel = `
[[types]]
name = "com.example.Base"

  [[types.methods]]
  constructor = true
  synthesized = true
  params = [{ name = "value", type = "int" }]
`

const subModel = `
[[types]]
name = "com.example.Sub"
extends = "com.example.Base"
annotations = [{ name = "lombok.EqualsAndHashCode", attrs = { of = ["missing"] } }]

  [[types.methods]]
  constructor = true
  body = [
    { call = "super" },
    { local = "x", type = "val" },
  ]
`

func writeModels(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func codes(ps []diag.Problem) []diag.Code {
	out := make([]diag.Code, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Code)
	}
	return out
}

func TestDiagnoseAcrossFiles(t *testing.T) {
	dir := writeModels(t, map[string]string{"base.toml": baseModel, "sub.toml": subModel})
	paths := []string{
		filepath.Join(dir, "sub.toml"),
		filepath.Join(dir, "missing.toml"),
		filepath.Join(dir, "base.toml"),
	}
	timer := observ.NewTimer()
	res, err := Diagnose(context.Background(), paths, Options{Config: project.DefaultConfig(), Jobs: 2, Timer: timer})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("got %d results", len(res.Files))
	}
	for i, fr := range res.Files {
		if fr.Path != paths[i] {
			t.Errorf("result %d is for %s, want %s", i, fr.Path, paths[i])
		}
	}

	sub := res.Files[0]
	for _, i := range []int{0, 2} {
		if err := testkit.CheckSpanInvariants(res.Files[i].Model); err != nil {
			t.Errorf("%s: %v", res.Files[i].Path, err)
		}
	}
	got := codes(sub.Bag.Items())
	want := []diag.Code{diag.AnnUnknownField, diag.CtorDefaultMissing, diag.ValNoInitializer}
	if len(got) != len(want) {
		t.Fatalf("sub problems = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sub problem %d = %s, want %s", i, got[i], want[i])
		}
	}
	call := sub.Model.File.Types[0].Methods[0].Body[0].(*ast.Call)
	if sub.Bag.Items()[1].Anchor != diag.Anchor(call) {
		t.Errorf("delegation problem not anchored at the call")
	}

	missing := res.Files[1]
	if missing.Model != nil || missing.Bag.Len() != 1 || missing.Bag.Items()[0].Code != diag.PrjInvalidModel {
		t.Errorf("missing file result = %+v", missing)
	}
	if res.Files[2].Bag.Len() != 0 {
		t.Errorf("base problems = %v", codes(res.Files[2].Bag.Items()))
	}

	errs, warns, _ := res.Counts()
	if errs != 3 || warns != 1 || !res.HasErrors() || len(res.Problems()) != 4 {
		t.Errorf("counts = %d errors, %d warnings", errs, warns)
	}
	if summary := timer.Summary(); !strings.Contains(summary, "inspect") {
		t.Errorf("timer summary misses inspect:\n%s", summary)
	}
}

func TestDiagnoseConfig(t *testing.T) {
	dir := writeModels(t, map[string]string{"base.toml": baseModel, "sub.toml": subModel})
	paths := []string{filepath.Join(dir, "base.toml"), filepath.Join(dir, "sub.toml")}

	cfg := project.DefaultConfig()
	cfg.Disabled = []string{"lombok.EqualsAndHashCode"}
	cfg.MinSeverity = diag.SevError
	res, err := Diagnose(context.Background(), paths, Options{Config: cfg})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if got := codes(res.Files[1].Bag.Items()); len(got) != 2 || got[0] != diag.CtorDefaultMissing {
		t.Errorf("problems with analyzer disabled = %v", got)
	}

	cfg = project.DefaultConfig()
	cfg.WarningsAsErrors = true
	cfg.InferenceKeyword = "var"
	res, err = Diagnose(context.Background(), paths, Options{Config: cfg})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	items := res.Files[1].Bag.Items()
	if len(items) != 2 || items[0].Severity != diag.SevError {
		t.Errorf("promoted problems = %+v", items)
	}
}

func TestDiagnoseCustomRegistry(t *testing.T) {
	dir := writeModels(t, map[string]string{"sub.toml": subModel})
	calls := 0
	register := func(r *analyzer.Registry) {
		r.Register("lombok.EqualsAndHashCode", analyzer.Func{ID: "count", Fn: func(*analyzer.Pass, *ast.Annotation) ([]diag.Problem, error) {
			calls++
			return nil, errors.New("not today")
		}})
	}
	res, err := Diagnose(context.Background(), []string{filepath.Join(dir, "sub.toml")}, Options{Register: register, Jobs: 1})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	fr := res.Files[0]
	if calls != 1 || len(fr.Failures) != 1 || fr.Failures[0].Analyzer != "count" {
		t.Errorf("calls = %d, failures = %+v", calls, fr.Failures)
	}
	if fr.Stats.AnalyzerCalls != 1 {
		t.Errorf("stats = %+v", fr.Stats)
	}
}

func TestDiagnoseCancelled(t *testing.T) {
	dir := writeModels(t, map[string]string{"sub.toml": subModel})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Diagnose(ctx, []string{filepath.Join(dir, "sub.toml")}, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Diagnose error = %v", err)
	}
	res, err := Diagnose(context.Background(), nil, Options{})
	if err != nil || len(res.Files) != 0 {
		t.Errorf("Diagnose(nil) = %+v, %v", res, err)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(e Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func TestDiagnoseProgress(t *testing.T) {
	dir := writeModels(t, map[string]string{"base.toml": baseModel, "sub.toml": subModel})
	good := filepath.Join(dir, "base.toml")
	missing := filepath.Join(dir, "missing.toml")
	sink := &recordingSink{}
	if _, err := Diagnose(context.Background(), []string{good, missing}, Options{Jobs: 2, Progress: sink}); err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	last := map[string]Event{}
	for _, e := range sink.events {
		if e.File != "" {
			last[e.File] = e
		}
	}
	if e := last[good]; e.Stage != StageInspect || e.Status != StatusDone {
		t.Errorf("last event for %s = %+v", good, e)
	}
	if e := last[missing]; e.Stage != StageLoad || e.Status != StatusError || e.Err == nil {
		t.Errorf("last event for %s = %+v", missing, e)
	}
	if first := sink.events[0]; first.Status != StatusQueued {
		t.Errorf("first event = %+v", first)
	}
}
