package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"genmark/internal/diag"
	"genmark/internal/diagfmt"
	"genmark/internal/driver"
	"genmark/internal/observ"
	"genmark/internal/project"
	"genmark/internal/trace"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <model.toml>...",
	Short: "Diagnose annotated declaration models",
	Long:  `Load each declaration model, run the annotation analyzers and the constructor delegation check, and report problems`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiag,
}

func init() {
	diagCmd.Flags().String("config", "", "path to genmark.toml (default: nearest to the first model)")
	diagCmd.Flags().String("format", "pretty", "output format (short|pretty|json|msgpack)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().String("min-severity", "", "drop problems below this severity (info|warning|error)")
	diagCmd.Flags().StringSlice("disable", nil, "analyzer names to disable")
	diagCmd.Flags().Bool("with-notes", false, "include problem notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().String("ui", "off", "live progress on stderr (auto|on|off)")
}

func runDiag(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	if trace.FromContext(contextOf(cmd)) == trace.Nop && cfg.TraceLevel != trace.LevelOff {
		cleanup, err := startTracer(cmd, cfg.TraceLevel)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	dopts := driver.Options{Config: cfg, Jobs: jobs, Timer: timer}
	var res *driver.Result
	if shouldUseTUI(mode, cmd.ErrOrStderr()) {
		res, err = runDiagWithUI(contextOf(cmd), cmd.ErrOrStderr(), "genmark diag", args, dopts)
	} else {
		res, err = driver.Diagnose(contextOf(cmd), args, dopts)
	}
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	opts := diagfmt.Options{
		Pretty: diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
			Summary:   true,
		},
		JSON: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		},
		ShortNotes: withNotes,
	}
	if err := diagfmt.Render(cmd.OutOrStdout(), format, res.Problems(), res.FileSet, opts); err != nil {
		return fmt.Errorf("failed to render problems: %w", err)
	}
	reportFailures(cmd.ErrOrStderr(), res)
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if res.HasErrors() {
		return errProblems
	}
	return nil
}

// resolveConfig loads --config, or the genmark.toml nearest to the first
// model, and applies command-line overrides.
func resolveConfig(cmd *cobra.Command, args []string) (project.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(path, args)
	if err != nil {
		return project.Config{}, err
	}

	root := cmd.Root().PersistentFlags()
	if root.Changed("max-diagnostics") {
		if cfg.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
			return project.Config{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if cfg.MaxDiagnostics < 0 {
			return project.Config{}, project.ErrNegativeMax
		}
	}
	if cmd.Flags().Changed("warnings-as-errors") {
		if cfg.WarningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
			return project.Config{}, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
	}
	if cmd.Flags().Changed("min-severity") {
		s, err := cmd.Flags().GetString("min-severity")
		if err != nil {
			return project.Config{}, fmt.Errorf("failed to get min-severity flag: %w", err)
		}
		if cfg.MinSeverity, err = diag.ParseSeverity(s); err != nil {
			return project.Config{}, err
		}
	}
	disabled, err := cmd.Flags().GetStringSlice("disable")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get disable flag: %w", err)
	}
	cfg.Disabled = append(cfg.Disabled, disabled...)
	return cfg, nil
}

func reportFailures(w io.Writer, res *driver.Result) {
	for i := range res.Files {
		for _, f := range res.Files[i].Failures {
			name := "?"
			if f.Annotation != nil {
				name = f.Annotation.Name
			}
			fmt.Fprintf(w, "%s: analyzer %s failed on @%s: %v\n", res.Files[i].Path, f.Analyzer, name, f.Err)
		}
	}
}

// loadConfig reads path, or the genmark.toml nearest to the first model.
func loadConfig(path string, args []string) (project.Config, error) {
	if path != "" {
		return project.LoadConfig(path)
	}
	return project.DiscoverConfig(filepath.Dir(args[0]))
}
