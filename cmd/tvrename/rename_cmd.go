package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zygboom-max/tv-rename-tool/internal/browser"
	"github.com/zygboom-max/tv-rename-tool/internal/config"
	"github.com/zygboom-max/tv-rename-tool/internal/history"
	"github.com/zygboom-max/tv-rename-tool/internal/logging"
	"github.com/zygboom-max/tv-rename-tool/internal/naming"
	"github.com/zygboom-max/tv-rename-tool/internal/pipeline"
	"github.com/zygboom-max/tv-rename-tool/internal/planner"
	"github.com/zygboom-max/tv-rename-tool/internal/storage"
	"github.com/zygboom-max/tv-rename-tool/internal/ui"
)

const (
	maxPreviewRows      = 20
	maxUnrecognizedRows = 10
)

func newRenameCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "rename [path]",
		Short: "Scan a directory and rename episode files",
		Long: `Scan a directory on the configured storage backend, match each video
file against the known episode naming patterns, and rename the matches
to the configured template.

Without a path argument the interactive folder browser opens (when
options.interactive is on); otherwise the backend's root path is used.

Examples:
  tvrename rename /media/tv/Severance
  tvrename rename --dry-run            # preview only, touch nothing
  tvrename rename -v /media/tv/Silo    # log every match decision`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(args, assumeYes)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runRename(args []string, assumeYes bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tmpl, err := naming.ParseTemplate(cfg.Options.NameTemplate)
	if err != nil {
		return fmt.Errorf("invalid name_template: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	backend, err := storage.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	dir, err := pickDirectory(ctx, backend, cfg, args)
	if err != nil {
		if errors.Is(err, browser.ErrCancelled) {
			ui.InfoMsg("No folder selected")
			return nil
		}
		return err
	}

	plan, scanTime, err := scanDirectory(ctx, backend, cfg, tmpl, logger, dir)
	if err != nil {
		return err
	}

	stats := pipeline.Collect(plan)
	stats.ScanDuration = scanTime
	printPreview(plan, stats, cfg.Options.Verbose)

	if plan.Matched() == 0 {
		printSummary(stats, cfg.Options.DryRun)
		return nil
	}

	if !cfg.Options.DryRun && !assumeYes && cfg.Options.Interactive {
		if !ui.Confirm(fmt.Sprintf("Rename %d files?", plan.Matched())) {
			ui.InfoMsg("Aborted, nothing renamed")
			return nil
		}
	}

	if !cfg.Options.DryRun {
		ui.Section("RENAMING")
	}

	exec := pipeline.NewExecutor(backend, cfg, logger)
	exec.OnResult = printItemResult

	stats, execErr := exec.Execute(ctx, plan)
	stats.ScanDuration = scanTime

	if !cfg.Options.DryRun {
		recordHistory(backend, plan, logger)
	}

	printSummary(stats, cfg.Options.DryRun)

	if execErr != nil {
		if errors.Is(execErr, context.Canceled) {
			ui.WarningMsg("Interrupted, remaining files untouched")
		}
		return execErr
	}
	return nil
}

// pickDirectory resolves the directory to scan: explicit argument,
// interactive browser, or the backend root.
func pickDirectory(ctx context.Context, backend storage.Backend, cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Options.Interactive && ui.IsTerminal() {
		return browser.Run(ctx, backend)
	}
	return backend.RootPath(), nil
}

// scanDirectory lists dir and builds the rename plan, with a spinner
// while the listing is in flight.
func scanDirectory(ctx context.Context, backend storage.Backend, cfg *config.Config, tmpl *naming.Template, logger *logging.Logger, dir string) (*planner.Plan, time.Duration, error) {
	start := time.Now()

	spin := ui.NewSpinner(fmt.Sprintf("Scanning %s", dir))
	spin.Start()
	entries, err := backend.List(ctx, dir)
	spin.Stop()
	if err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", dir, err)
	}

	parser := naming.NewParser(cfg.Options.DefaultSeason)
	plan := planner.New(parser, tmpl, logger).Build(dir, entries)
	return plan, time.Since(start), nil
}

// printPreview shows what the plan would do before anything runs.
func printPreview(plan *planner.Plan, stats pipeline.Statistics, verbose bool) {
	ui.Section("RENAME PREVIEW")
	fmt.Printf("Directory: %s\n", ui.Path(plan.Dir))
	fmt.Printf("Scanned %d video files (%d other entries ignored)\n\n", stats.TotalScanned, plan.Ignored)

	table := ui.NewTable("#", "Current Name", "New Name", "Note")
	rows := 0
	for _, item := range plan.Items {
		if item.Status != planner.StatusMatched && item.Status != planner.StatusConflict {
			continue
		}
		rows++
		if rows > maxPreviewRows {
			continue
		}
		note := ""
		if item.Status == planner.StatusConflict {
			note = "conflict"
		}
		table.AddRow(fmt.Sprintf("%d", rows), item.Source.Name, item.Target, note)
	}

	if rows == 0 {
		fmt.Println("Nothing to rename")
	} else {
		table.Render()
		if rows > maxPreviewRows {
			fmt.Println(ui.Dim(fmt.Sprintf("  ... and %d more", rows-maxPreviewRows)))
		}
	}

	if stats.Unrecognized > 0 {
		fmt.Println()
		ui.WarningMsg("%d files did not match any known pattern", stats.Unrecognized)
		if verbose {
			shown := 0
			for _, item := range plan.Items {
				if item.Status != planner.StatusUnrecognized {
					continue
				}
				if shown >= maxUnrecognizedRows {
					fmt.Println(ui.Dim(fmt.Sprintf("  ... and %d more", stats.Unrecognized-shown)))
					break
				}
				fmt.Printf("  %s\n", ui.Dim(item.Source.Name))
				shown++
			}
		}
	}
}

// printItemResult is the executor's per-item callback.
func printItemResult(index, total int, item planner.Item) {
	switch item.Status {
	case planner.StatusExecuted:
		fmt.Printf("[%d/%d] %s %s %s %s\n",
			index, total, item.Source.Name, ui.Arrow(), ui.Target(item.Target), ui.Success("✓"))
	case planner.StatusFailed:
		fmt.Printf("[%d/%d] %s %s (%v)\n",
			index, total, item.Source.Name, ui.Error("✗"), item.Err)
	}
}

// recordHistory journals the executed renames of a one-shot run.
func recordHistory(backend storage.Backend, plan *planner.Plan, logger *logging.Logger) {
	db, err := history.Open()
	if err != nil {
		logger.Warn("history", "journal unavailable", logging.F("error", err.Error()))
		return
	}
	defer db.Close()

	journalExecuted(db, backend.Name(), plan, logger)
}

// printSummary prints the run statistics block.
func printSummary(stats pipeline.Statistics, dryRun bool) {
	ui.Section("SUMMARY")

	renamedLabel := "Renamed:"
	if dryRun {
		renamedLabel = "Would rename:"
	}

	fmt.Printf("Total scanned:    %d\n", stats.TotalScanned)
	fmt.Printf("Recognized:       %d\n", stats.Recognized)
	fmt.Printf("%-18s%d\n", renamedLabel, stats.Renamed)
	fmt.Printf("Already correct:  %d\n", stats.Skipped)
	fmt.Printf("Unrecognized:     %d\n", stats.Unrecognized)
	fmt.Printf("Conflicts:        %d\n", stats.Conflicts)
	fmt.Printf("Failed:           %d\n", stats.Failed)

	fmt.Printf("\nScan time:   %s\n", ui.FormatDuration(stats.ScanDuration))
	if stats.RenameDuration > 0 {
		fmt.Printf("Rename time: %s\n", ui.FormatDuration(stats.RenameDuration))
	}

	if dryRun {
		fmt.Println()
		ui.InfoMsg("Dry run, no files were changed")
	}
}
