package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"genmark/internal/prof"
	"genmark/internal/version"
)

// errProblems makes the process exit with status 1 once the problems have
// already been printed.
var errProblems = errors.New("error-severity problems reported")

var (
	traceCleanup = func() {}
	profSession  *prof.Session
)

var rootCmd = &cobra.Command{
	Use:           "genmark",
	Short:         "Code-generation marker analysis",
	Long:          `genmark projects generic types for generated members and diagnoses annotated declaration models`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		on, err := colorEnabled(cmd)
		if err != nil {
			return err
		}
		color.NoColor = !on
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		profSession, err = setupProfiling(cmd)
		return err
	},
}

func init() {
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics kept per file")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	rootCmd.Version = version.Version
	err := rootCmd.Execute()
	shutdown(os.Stderr)
	if err != nil {
		if !errors.Is(err, errProblems) {
			fmt.Fprintf(os.Stderr, "genmark: %v\n", err)
		}
		os.Exit(1)
	}
}

// shutdown stops the profilers and flushes the tracer. Cobra skips post-run
// hooks when RunE fails, so main calls it after Execute.
func shutdown(errOut io.Writer) {
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(errOut, "profile: %v\n", err)
	}
	profSession = nil
	traceCleanup()
	traceCleanup = func() {}
}

func colorEnabled(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want auto, on or off)", mode)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}
