package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zygboom-max/tv-rename-tool/internal/history"
	"github.com/zygboom-max/tv-rename-tool/internal/logging"
	"github.com/zygboom-max/tv-rename-tool/internal/naming"
	"github.com/zygboom-max/tv-rename-tool/internal/pipeline"
	"github.com/zygboom-max/tv-rename-tool/internal/planner"
	"github.com/zygboom-max/tv-rename-tool/internal/storage"
	"github.com/zygboom-max/tv-rename-tool/internal/ui"
	"github.com/zygboom-max/tv-rename-tool/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a local directory and rename new episode files",
		Long: `Monitor a local directory tree for new video files and run the rename
pipeline automatically on each directory that changes.

Only the local backend can be watched; Alist and Baidu do not deliver
filesystem events. Events are debounced so a batch download triggers a
single rescan once the burst settles.

Examples:
  tvrename watch                 # watch local.root_path from the config
  tvrename watch /media/tv/new
  tvrename watch -n              # log what would be renamed, touch nothing`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
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
	if backend.Name() != "local" {
		return fmt.Errorf("watch mode requires the local backend, config uses %q", backend.Name())
	}

	root := backend.RootPath()
	if len(args) > 0 {
		root = args[0]
	}

	ctx, stop := signalContext()
	defer stop()

	parser := naming.NewParser(cfg.Options.DefaultSeason)
	plnr := planner.New(parser, tmpl, logger)
	exec := pipeline.NewExecutor(backend, cfg, logger)

	var journal *history.DB
	if !cfg.Options.DryRun {
		journal, err = history.Open()
		if err != nil {
			logger.Warn("watch", "journal unavailable", logging.F("error", err.Error()))
			journal = nil
		} else {
			defer journal.Close()
		}
	}

	onScan := func(dir string) {
		entries, lerr := backend.List(ctx, dir)
		if lerr != nil {
			logger.Error("watch", "listing failed", lerr, logging.F("dir", dir))
			return
		}

		plan := plnr.Build(dir, entries)
		matched := plan.Matched()
		if matched == 0 {
			logger.Debug("watch", "nothing to rename", logging.F("dir", dir))
			return
		}

		stats, eerr := exec.Execute(ctx, plan)
		if eerr != nil && !errors.Is(eerr, context.Canceled) {
			ui.ErrorMsg("%s: %v", dir, eerr)
		}
		if journal != nil {
			journalExecuted(journal, backend.Name(), plan, logger)
		}

		if cfg.Options.DryRun {
			ui.InfoMsg("%s: would rename %d files", dir, stats.Renamed)
		} else {
			ui.SuccessMsg("%s: renamed %d of %d files", dir, stats.Renamed, matched)
		}
	}

	debounce := time.Duration(cfg.Options.WatchDebounceSecs) * time.Second
	w, err := watcher.New(onScan, debounce, logger)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Watch(root); err != nil {
		return fmt.Errorf("setting up watch: %w", err)
	}

	ui.InfoMsg("Watching %s", root)
	if cfg.Options.DryRun {
		ui.WarningMsg("Dry run, files will not be renamed")
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := w.Run(ctx); err != nil {
		// Ctrl+C is the normal way to stop a watch, not a failure.
		if errors.Is(err, context.Canceled) {
			fmt.Println()
			ui.InfoMsg("Watch stopped")
			return nil
		}
		return err
	}
	return nil
}
