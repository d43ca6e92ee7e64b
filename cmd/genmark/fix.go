package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"genmark/internal/driver"
	"genmark/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <model.toml>...",
	Short: "Apply quick fixes offered by the analyzers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().String("config", "", "path to genmark.toml (default: nearest to the first model)")
	fixCmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	fixCmd.Flags().String("id", "", "apply only the fix with this id")
	fixCmd.Flags().Bool("dry-run", false, "print the resulting files instead of writing them")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runFix(cmd *cobra.Command, args []string) error {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if all && id != "" {
		return fmt.Errorf("--all and --id cannot be used together")
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(path, args)
	if err != nil {
		return err
	}
	res, err := driver.Diagnose(contextOf(cmd), args, driver.Options{Config: cfg, Jobs: jobs})
	if err != nil {
		return err
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, DryRun: dryRun}
	switch {
	case all:
		opts.Mode = fix.ApplyModeAll
	case id != "":
		opts.Mode, opts.TargetID = fix.ApplyModeID, id
	}
	out := cmd.OutOrStdout()
	applied, err := fix.Apply(res.FileSet, res.Problems(), opts)
	for _, s := range applied.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s (%s): %s\n", s.ID, s.Title, s.Reason)
	}
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(out, "no fixes applied")
		return nil
	}
	if err != nil {
		return err
	}
	for _, a := range applied.Applied {
		fmt.Fprintf(out, "applied %s: %s (%s)\n", a.ID, a.Title, a.PrimaryPath)
	}
	for _, c := range applied.FileChanges {
		if dryRun {
			fmt.Fprintf(out, "--- %s\n%s", c.Path, c.Content)
			continue
		}
		fmt.Fprintf(out, "updated %s (%d edits)\n", c.Path, c.EditCount)
	}
	return nil
}
