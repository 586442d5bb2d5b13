package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zygboom-max/tv-rename-tool/internal/config"
	"github.com/zygboom-max/tv-rename-tool/internal/storage"
	"github.com/zygboom-max/tv-rename-tool/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tvrename configuration",
		Long: `Commands for managing the tvrename configuration.

The config file is stored at: ~/.config/tvrename/config.toml

Examples:
  tvrename config init    # Create default config file
  tvrename config show    # Display current configuration
  tvrename config path    # Show config file path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Long: `Create a new configuration file with default values.

The config file will be created at ~/.config/tvrename/config.toml
Edit it to pick a storage backend and fill in credentials.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ConfigExists() && !force {
				path, _ := config.ConfigPath()
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			path, _ := config.ConfigPath()
			ui.SuccessMsg("Created config file: %s", path)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. Edit the config file: pick storage_type and fill in credentials")
			fmt.Println("  2. Run 'tvrename test' to verify the connection")
			fmt.Println("  3. Run 'tvrename rename --dry-run' to preview a rename")

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fmt.Printf("Config file: %s\n\n", activeConfigPath())

			fmt.Println("=== Storage ===")
			fmt.Printf("Type: %s\n", cfg.StorageType)
			kind, kerr := storage.ParseKind(cfg.StorageType)
			if kerr != nil {
				ui.WarningMsg("%v", kerr)
			} else {
				switch kind {
				case storage.KindLocal:
					fmt.Printf("Root: %s\n", cfg.Local.RootPath)
				case storage.KindAlist:
					fmt.Printf("URL:   %s\n", cfg.Alist.BaseURL)
					fmt.Printf("Token: %s\n", maskToken(cfg.Alist.Token))
					fmt.Printf("Root:  %s\n", cfg.Alist.RootPath)
				case storage.KindBaidu:
					fmt.Printf("Token: %s\n", maskToken(cfg.Baidu.AccessToken))
					fmt.Printf("Root:  %s\n", cfg.Baidu.RootPath)
				}
			}

			fmt.Println("\n=== Options ===")
			fmt.Printf("Name template:  %s\n", cfg.Options.NameTemplate)
			fmt.Printf("Default season: %d\n", cfg.Options.DefaultSeason)
			fmt.Printf("Dry run:        %v\n", cfg.Options.DryRun)
			fmt.Printf("Interactive:    %v\n", cfg.Options.Interactive)
			fmt.Printf("Max retries:    %d\n", cfg.Options.MaxRetries)

			fmt.Println("\n=== Logging ===")
			fmt.Printf("Level: %s\n", cfg.Logging.Level)
			file := cfg.Logging.File
			if file == "" {
				file = "(default)"
			}
			fmt.Printf("File:  %s\n", file)

			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			if !config.ConfigExists() {
				fmt.Println("(file does not exist)")
			}
			return nil
		},
	}
}
