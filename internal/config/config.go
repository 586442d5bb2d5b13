package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zygboom-max/tv-rename-tool/internal/paths"
)

type Config struct {
	StorageType string        `mapstructure:"storage_type"`
	Local       LocalConfig   `mapstructure:"local"`
	Alist       AlistConfig   `mapstructure:"alist"`
	Baidu       BaiduConfig   `mapstructure:"baidu"`
	Options     OptionsConfig `mapstructure:"options"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

// LocalConfig points at a directory on this machine.
type LocalConfig struct {
	RootPath string `mapstructure:"root_path"`
}

// AlistConfig holds Alist/OpenList server settings. Token is the raw API
// token from the admin page, or whatever 'tvrename login' saved.
type AlistConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Token    string `mapstructure:"token"`
	RootPath string `mapstructure:"root_path"`
}

// BaiduConfig holds Baidu Netdisk settings. AccessToken is an OAuth token
// obtained out of band; this tool never runs the OAuth flow itself.
type BaiduConfig struct {
	AccessToken string `mapstructure:"access_token"`
	RootPath    string `mapstructure:"root_path"`
}

// OptionsConfig contains general rename options
type OptionsConfig struct {
	NameTemplate      string `mapstructure:"name_template"`
	DryRun            bool   `mapstructure:"dry_run"`
	Verbose           bool   `mapstructure:"verbose"`
	Interactive       bool   `mapstructure:"interactive"`
	DefaultSeason     int    `mapstructure:"default_season"`
	MaxRetries        int    `mapstructure:"max_retries"`
	RenamePauseMS     int    `mapstructure:"rename_pause_ms"`
	WatchDebounceSecs int    `mapstructure:"watch_debounce_secs"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		StorageType: "local",
		Local: LocalConfig{
			RootPath: "",
		},
		Alist: AlistConfig{
			BaseURL:  "http://127.0.0.1:5244",
			Token:    "",
			RootPath: "/",
		},
		Baidu: BaiduConfig{
			AccessToken: "",
			RootPath:    "/",
		},
		Options: OptionsConfig{
			NameTemplate:      "S{season:02d}E{episode:02d}",
			DryRun:            false,
			Verbose:           false,
			Interactive:       true,
			DefaultSeason:     1,
			MaxRetries:        3,
			RenamePauseMS:     200,
			WatchDebounceSecs: 5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing default file just yields defaults; a missing
// explicit file is an error because the user asked for that exact file.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the default location.
func (c *Config) Save() error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configFile)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}

	return os.WriteFile(configFile, []byte(c.ToTOML()), 0600)
}

func ConfigPath() (string, error) {
	return paths.ConfigPath()
}

func ConfigExists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# tvrename configuration
# Generated by: tvrename config init

# ============================================================================
# STORAGE BACKEND
# Which storage the rename run targets: "local", "alist", or "baidu"
# ============================================================================
storage_type = "%s"

# ============================================================================
# LOCAL DIRECTORY
# Used when storage_type = "local"
# ============================================================================
[local]
root_path = "%s"

# ============================================================================
# ALIST / OPENLIST
# Used when storage_type = "alist"
# Get a token from the Alist admin page, or run: tvrename login <username>
# ============================================================================
[alist]
base_url = "%s"
token = "%s"
root_path = "%s"

# ============================================================================
# BAIDU NETDISK
# Used when storage_type = "baidu"
# access_token comes from Baidu's OAuth flow (pan.baidu.com open platform)
# ============================================================================
[baidu]
access_token = "%s"
root_path = "%s"

# ============================================================================
# RENAME OPTIONS
# ============================================================================
[options]
# New-name template, {season} and {episode} with optional zero padding
name_template = "%s"

# Preview mode - plan and print but never rename
dry_run = %v

# Log per-file pattern matching decisions
verbose = %v

# Browse for a folder interactively when no path argument is given
interactive = %v

# Season to assume when a filename only carries an episode number
default_season = %d

# Retry attempts for connection and rate-limit failures
max_retries = %d

# Pause between consecutive renames, milliseconds
rename_pause_ms = %d

# Quiet period after the last file change before a watch run rescans
watch_debounce_secs = %d

# ============================================================================
# LOGGING
# ============================================================================
[logging]
level = "%s"
file = "%s"
max_size_mb = %d
max_backups = %d
`,
		c.StorageType,
		c.Local.RootPath,
		c.Alist.BaseURL,
		c.Alist.Token,
		c.Alist.RootPath,
		c.Baidu.AccessToken,
		c.Baidu.RootPath,
		c.Options.NameTemplate,
		c.Options.DryRun,
		c.Options.Verbose,
		c.Options.Interactive,
		c.Options.DefaultSeason,
		c.Options.MaxRetries,
		c.Options.RenamePauseMS,
		c.Options.WatchDebounceSecs,
		c.Logging.Level,
		c.Logging.File,
		c.Logging.MaxSizeMB,
		c.Logging.MaxBackups,
	)
}
