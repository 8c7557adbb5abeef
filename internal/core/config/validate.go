package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"

	"github.com/hay-kot/criterio"
	"golang.org/x/text/language"
)

// Themes lists the palette names the TUI knows about. The styles package
// registers the palettes themselves.
var Themes = []string{"tokyo-night", "gruvbox", "catppuccin", "kanagawa", "onedark"}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// URL and locale parsing and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("server.base_url", c.Server.BaseURL, isHTTPURL),
		criterio.Run("stats.locale", c.Stats.Locale, isLocale),
		criterio.Run("tui.theme", c.TUI.Theme, isTheme),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Alerts.DismissAfter < 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Alerts",
			Item:     "dismiss_after",
			Message:  "banners will stay until closed by hand",
		})
	}

	if c.Alerts.MaxHistory == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Alerts",
			Item:     "max_history",
			Message:  "notification history is unbounded",
		})
	}

	if c.Stats.Interval < c.Server.Timeout {
		warnings = append(warnings, ValidationWarning{
			Category: "Stats",
			Item:     "interval",
			Message:  fmt.Sprintf("interval %s is shorter than server.timeout %s; fetches may overlap", c.Stats.Interval, c.Server.Timeout),
		})
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

func isLocale(tag string) error {
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("unknown locale %q: %w", tag, err)
	}
	return nil
}

func isTheme(name string) error {
	if !slices.Contains(Themes, name) {
		return fmt.Errorf("unknown theme %q", name)
	}
	return nil
}
