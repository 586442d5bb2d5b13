package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zygboom-max/tv-rename-tool/internal/naming"
	"github.com/zygboom-max/tv-rename-tool/internal/storage"
	"github.com/zygboom-max/tv-rename-tool/internal/ui"
)

const testTimeout = 15 * time.Second

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test the configured storage connection",
		Long: `Verify the configuration and probe the configured storage backend.

Checks:
  - config file parses and the name template is valid
  - backend credentials are accepted
  - the configured root path is reachable`,
		RunE: runTest,
	}
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Config file: %s\n\n", activeConfigPath())

	if _, terr := naming.ParseTemplate(cfg.Options.NameTemplate); terr != nil {
		ui.ErrorMsg("Name template %q: %v", cfg.Options.NameTemplate, terr)
		return fmt.Errorf("invalid name_template")
	}
	ui.SuccessMsg("Name template: %s", cfg.Options.NameTemplate)

	backend, err := storage.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, testTimeout)
	defer cancel()

	spin := ui.NewSpinner(fmt.Sprintf("Testing %s connection", backend.Name()))
	spin.Start()
	err = backend.TestConnection(ctx)
	spin.Stop()
	if err != nil {
		ui.ErrorMsg("Connection failed: %v", err)
		return fmt.Errorf("%s backend test failed", backend.Name())
	}

	ui.SuccessMsg("Connected to %s storage", backend.Name())
	fmt.Printf("Root path: %s\n", ui.Path(backend.RootPath()))
	return nil
}
