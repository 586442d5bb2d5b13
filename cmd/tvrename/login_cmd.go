package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zygboom-max/tv-rename-tool/internal/config"
	"github.com/zygboom-max/tv-rename-tool/internal/storage"
	"github.com/zygboom-max/tv-rename-tool/internal/ui"
)

func newLoginCmd() *cobra.Command {
	var (
		password string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in to the Alist server and fetch a token",
		Long: `Authenticate against the configured Alist server and print the API
token. With --save the token is written into the config file so later
commands can use it.

The password comes from --password or the TVRENAME_PASSWORD environment
variable.

Examples:
  tvrename login admin --password secret
  TVRENAME_PASSWORD=secret tvrename login admin --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(args[0], password, save)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Alist account password")
	cmd.Flags().BoolVar(&save, "save", false, "write the token into the config file")

	return cmd
}

func runLogin(username, password string, save bool) error {
	// Load without flag overrides so --save never persists --dry-run
	// or --verbose into the file.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if cfg.Alist.BaseURL == "" {
		return fmt.Errorf("alist.base_url is not set (run 'tvrename config init' and edit the config)")
	}

	if password == "" {
		password = os.Getenv("TVRENAME_PASSWORD")
	}
	if password == "" {
		return fmt.Errorf("password required (--password or TVRENAME_PASSWORD env)")
	}

	ctx, stop := signalContext()
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	token, err := storage.Login(ctx, cfg.Alist.BaseURL, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	ui.SuccessMsg("Logged in to %s as %s", cfg.Alist.BaseURL, username)

	if save {
		cfg.Alist.Token = token
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("unable to save config: %w", err)
		}
		ui.SuccessMsg("Token saved to config: %s", maskToken(token))
	} else {
		fmt.Printf("Token: %s\n", token)
		fmt.Println("Run again with --save to store it in the config file")
	}

	return nil
}
