package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"genmark/internal/diag"
	"genmark/internal/trace"
	"genmark/internal/valcheck"
)

// DefaultMaxDiagnostics caps the problems kept per model file.
const DefaultMaxDiagnostics = 100

var (
	// ErrNegativeMax rejects a negative [diagnostics].max.
	ErrNegativeMax = errors.New("[diagnostics].max must not be negative")
	// ErrEmptyKeyword rejects an empty [inference].keyword.
	ErrEmptyKeyword = errors.New("[inference].keyword must not be empty")
)

// Config is the resolved content of genmark.toml.
type Config struct {
	Path string // empty when no file was found

	MaxDiagnostics   int
	Disabled         []string
	WarningsAsErrors bool
	MinSeverity      diag.Severity

	InferenceKeyword string

	TraceLevel trace.Level
}

// DefaultConfig is used when no genmark.toml exists.
func DefaultConfig() Config {
	return Config{
		MaxDiagnostics:   DefaultMaxDiagnostics,
		MinSeverity:      diag.SevInfo,
		InferenceKeyword: valcheck.DefaultKeyword,
		TraceLevel:       trace.LevelOff,
	}
}

type configFile struct {
	Diagnostics struct {
		Max              int      `toml:"max"`
		Disabled         []string `toml:"disabled"`
		WarningsAsErrors bool     `toml:"warnings_as_errors"`
		MinSeverity      string   `toml:"min_severity"`
	} `toml:"diagnostics"`
	Inference struct {
		Keyword string `toml:"keyword"`
	} `toml:"inference"`
	Trace struct {
		Level string `toml:"level"`
	} `toml:"trace"`
}

// LoadConfig reads path. Keys that are absent keep their defaults.
func LoadConfig(path string) (Config, error) {
	var file configFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg := DefaultConfig()
	cfg.Path = path

	if meta.IsDefined("diagnostics", "max") {
		if file.Diagnostics.Max < 0 {
			return Config{}, fmt.Errorf("%s: %w", path, ErrNegativeMax)
		}
		cfg.MaxDiagnostics = file.Diagnostics.Max
	}
	if meta.IsDefined("diagnostics", "disabled") {
		for _, name := range file.Diagnostics.Disabled {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Disabled = append(cfg.Disabled, name)
			}
		}
	}
	cfg.WarningsAsErrors = file.Diagnostics.WarningsAsErrors
	if meta.IsDefined("diagnostics", "min_severity") {
		sev, err := diag.ParseSeverity(file.Diagnostics.MinSeverity)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [diagnostics].min_severity: %w", path, err)
		}
		cfg.MinSeverity = sev
	}
	if meta.IsDefined("inference", "keyword") {
		kw := strings.TrimSpace(file.Inference.Keyword)
		if kw == "" {
			return Config{}, fmt.Errorf("%s: %w", path, ErrEmptyKeyword)
		}
		cfg.InferenceKeyword = kw
	}
	if meta.IsDefined("trace", "level") {
		lvl, err := trace.ParseLevel(file.Trace.Level)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [trace].level: %w", path, err)
		}
		cfg.TraceLevel = lvl
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return cfg, nil
}

// DiscoverConfig loads the genmark.toml nearest to startDir, or the
// defaults when there is none.
func DiscoverConfig(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}
