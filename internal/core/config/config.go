// Package config handles configuration loading and validation for bizfindr.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTheme is the TUI palette used when tui.theme is unset.
const DefaultTheme = "tokyo-night"

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Stats    StatsConfig    `yaml:"stats"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Forms    FormsConfig    `yaml:"forms"`
	Page     PageConfig     `yaml:"page"`
	TUI      TUIConfig      `yaml:"tui"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ServerConfig points the client at a BizFindr server.
type ServerConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// StatsConfig controls the navbar stat poller.
type StatsConfig struct {
	Interval time.Duration `yaml:"interval"`
	Locale   string        `yaml:"locale"`
	Suffix   string        `yaml:"suffix"`
}

// AlertsConfig controls banner lifetime and history retention.
type AlertsConfig struct {
	// DismissAfter is the default auto-dismiss delay. A negative value keeps
	// banners until they are closed by hand.
	DismissAfter time.Duration `yaml:"dismiss_after"`
	// MaxHistory caps persisted notifications; 0 keeps everything.
	MaxHistory int `yaml:"max_history"`
}

// RefreshConfig controls the manual refresh trigger.
type RefreshConfig struct {
	ReloadDelay time.Duration `yaml:"reload_delay"`
}

// FormsConfig controls submit-button loading states.
type FormsConfig struct {
	RevertAfter time.Duration `yaml:"revert_after"`
}

// PageConfig holds page behaviour settings.
type PageConfig struct {
	BackToTopThreshold int `yaml:"back_to_top_threshold"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DatabaseConfig tunes the sqlite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 10 * time.Second,
		},
		Stats: StatsConfig{
			Interval: 5 * time.Minute,
			Locale:   "en-US",
			Suffix:   " records",
		},
		Alerts: AlertsConfig{
			DismissAfter: 5 * time.Second,
			MaxHistory:   500,
		},
		Refresh: RefreshConfig{ReloadDelay: 1500 * time.Millisecond},
		Forms:   FormsConfig{RevertAfter: 3 * time.Second},
		Page:    PageConfig{BackToTopThreshold: 300},
		TUI:     TUIConfig{Theme: DefaultTheme},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = defaults.Server.Timeout
	}
	if c.Stats.Interval == 0 {
		c.Stats.Interval = defaults.Stats.Interval
	}
	if c.Stats.Locale == "" {
		c.Stats.Locale = defaults.Stats.Locale
	}
	if c.Stats.Suffix == "" {
		c.Stats.Suffix = defaults.Stats.Suffix
	}
	if c.Alerts.DismissAfter == 0 {
		c.Alerts.DismissAfter = defaults.Alerts.DismissAfter
	}
	if c.Refresh.ReloadDelay == 0 {
		c.Refresh.ReloadDelay = defaults.Refresh.ReloadDelay
	}
	if c.Forms.RevertAfter == 0 {
		c.Forms.RevertAfter = defaults.Forms.RevertAfter
	}
	if c.Page.BackToTopThreshold == 0 {
		c.Page.BackToTopThreshold = defaults.Page.BackToTopThreshold
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// AutoDismiss returns the banner delay to hand to the notification center.
// Zero means banners persist.
func (c *Config) AutoDismiss() time.Duration {
	if c.Alerts.DismissAfter < 0 {
		return 0
	}
	return c.Alerts.DismissAfter
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url cannot be empty")
	}

	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout cannot be negative")
	}

	if c.Stats.Interval < time.Second {
		return fmt.Errorf("stats.interval must be at least 1s")
	}

	if c.Alerts.MaxHistory < 0 {
		return fmt.Errorf("alerts.max_history cannot be negative")
	}

	if c.Refresh.ReloadDelay < 0 {
		return fmt.Errorf("refresh.reload_delay cannot be negative")
	}

	if c.Forms.RevertAfter < 0 {
		return fmt.Errorf("forms.revert_after cannot be negative")
	}

	if c.Page.BackToTopThreshold < 0 {
		return fmt.Errorf("page.back_to_top_threshold cannot be negative")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns must be between 0 and max_open_conns")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	return nil
}

// DatabaseFile returns the path to the sqlite database.
func (c *Config) DatabaseFile() string {
	return filepath.Join(c.DataDir, "bizfindr.db")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "bizfindr.log")
}
