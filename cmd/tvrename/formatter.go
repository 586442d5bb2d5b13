package main

import (
	_ "embed"
	"fmt"

	"github.com/zygboom-max/tv-rename-tool/internal/config"
	"github.com/zygboom-max/tv-rename-tool/internal/history"
	"github.com/zygboom-max/tv-rename-tool/internal/logging"
	"github.com/zygboom-max/tv-rename-tool/internal/planner"
)

//go:embed assets/header.txt
var asciiHeader string

// printHeader displays the ASCII header with version info
func printHeader(version string) {
	fmt.Println(asciiHeader)
	fmt.Printf("Version: %s\n\n", version)
}

// loadConfig reads the config file and folds the persistent CLI flags in
// on top. Flags win over file values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dryRun {
		cfg.Options.DryRun = true
	}
	if verbose {
		cfg.Options.Verbose = true
	}
	return cfg, nil
}

// newLogger opens the log file configured in cfg. Verbose runs drop the
// level to debug so per-file match decisions end up in the log.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	if cfg.Options.Verbose {
		logger.SetLevel(logging.LevelDebug)
	}
	return logger, nil
}

// activeConfigPath reports which config file the current invocation reads.
func activeConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	path, err := config.ConfigPath()
	if err != nil {
		return ""
	}
	return path
}

// maskToken hides the middle of a credential for display.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// journalExecuted records each executed rename of plan in the history
// journal. Failures are logged, not fatal: the renames already happened.
func journalExecuted(db *history.DB, backendName string, plan *planner.Plan, logger *logging.Logger) {
	for _, item := range plan.Items {
		if item.Status != planner.StatusExecuted {
			continue
		}
		if err := db.Record(backendName, plan.Dir, item.Source.Name, item.Target); err != nil {
			logger.Warn("history", "journal write failed",
				logging.F("file", item.Source.Name),
				logging.F("error", err.Error()))
		}
	}
}
