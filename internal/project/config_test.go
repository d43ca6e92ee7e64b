package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"genmark/internal/diag"
	"genmark/internal/trace"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[diagnostics]
max = 7
disabled = ["lombok.Singular", "  "]
warnings_as_errors = true
min_severity = "warning"

[inference]
keyword = "lombok.val"

[trace]
level = "phase"
`)
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		Path:             path,
		MaxDiagnostics:   7,
		Disabled:         []string{"lombok.Singular"},
		WarningsAsErrors: true,
		MinSeverity:      diag.SevWarning,
		InferenceKeyword: "lombok.val",
		TraceLevel:       trace.LevelPhase,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[diagnostics]\n")
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	want.Path = path
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		is      error
	}{
		{"negative max", "[diagnostics]\nmax = -1\n", "", ErrNegativeMax},
		{"empty keyword", "[inference]\nkeyword = \" \"\n", "", ErrEmptyKeyword},
		{"bad severity", "[diagnostics]\nmin_severity = \"fatal\"\n", "min_severity", nil},
		{"bad level", "[trace]\nlevel = \"loud\"\n", "[trace].level", nil},
		{"unknown key", "[diagnostics]\nmaximum = 3\n", "unknown key diagnostics.maximum", nil},
		{"syntax", "[diagnostics\n", "failed to parse TOML", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, t.TempDir(), tt.content))
			if err == nil {
				t.Fatalf("LoadConfig succeeded")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v is not %v", err, tt.is)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := FindConfig(nested)
	if err != nil || !ok {
		t.Fatalf("FindConfig = %q, %v, %v", got, ok, err)
	}
	want, _ := filepath.Abs(path)
	if got != want {
		t.Errorf("FindConfig = %q, want %q", got, want)
	}

	cfg, err := DiscoverConfig(nested)
	if err != nil || cfg.Path != want {
		t.Errorf("DiscoverConfig = %+v, %v", cfg, err)
	}
}
