// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Secondary:  lipgloss.Color("#94e2d5"), // Teal
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Background: lipgloss.Color("#1e1e2e"), // Base
		Surface:    lipgloss.Color("#313244"), // Surface0
		Success:    lipgloss.Color("#a6e3a1"), // Green
		Warning:    lipgloss.Color("#f9e2af"), // Yellow
		Error:      lipgloss.Color("#f38ba8"), // Red
	},
	"kanagawa": {
		Primary:    lipgloss.Color("#7E9CD8"), // crystalBlue
		Secondary:  lipgloss.Color("#7FB4CA"), // springBlue
		Foreground: lipgloss.Color("#DCD7BA"), // fujiWhite
		Muted:      lipgloss.Color("#727169"), // fujiGray
		Background: lipgloss.Color("#1F1F28"), // sumiInk1
		Surface:    lipgloss.Color("#2A2A37"), // sumiInk3
		Success:    lipgloss.Color("#76946A"), // autumnGreen
		Warning:    lipgloss.Color("#DCA561"), // autumnYellow
		Error:      lipgloss.Color("#C34043"), // autumnRed
	},
	"onedark": {
		Primary:    lipgloss.Color("#61afef"), // blue
		Secondary:  lipgloss.Color("#56b6c2"), // cyan
		Foreground: lipgloss.Color("#abb2bf"), // foreground
		Muted:      lipgloss.Color("#5c6370"), // comment grey
		Background: lipgloss.Color("#282c34"), // background
		Surface:    lipgloss.Color("#3e4452"), // gutter grey
		Success:    lipgloss.Color("#98c379"), // green
		Warning:    lipgloss.Color("#e5c07b"), // yellow
		Error:      lipgloss.Color("#e06c75"), // red
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	TextMutedStyle     lipgloss.Style
	TextErrorStyle     lipgloss.Style
	TextWarningStyle   lipgloss.Style
	TextSuccessStyle   lipgloss.Style

	// Navbar.
	NavbarStyle     lipgloss.Style
	BrandStyle      lipgloss.Style
	StatStyle       lipgloss.Style
	ButtonStyle     lipgloss.Style
	ButtonBusyStyle lipgloss.Style

	// Tabs.
	TabStyle       lipgloss.Style
	TabActiveStyle lipgloss.Style

	// Banners.
	BannerInfoStyle    lipgloss.Style
	BannerSuccessStyle lipgloss.Style
	BannerWarningStyle lipgloss.Style
	BannerDangerStyle  lipgloss.Style

	// Page chrome.
	SearchPromptStyle lipgloss.Style
	BackToTopStyle    lipgloss.Style
	HelpStyle         lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	TextMutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	TextErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error)
	TextWarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)
	TextSuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success)

	NavbarStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Foreground).
		Padding(0, 1)
	BrandStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Background(p.Surface).
		Bold(true)
	StatStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Background(p.Surface)
	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)
	ButtonBusyStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Muted).
		Foreground(p.Background)

	TabStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)
	TabActiveStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	banner := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		Foreground(p.Foreground).
		PaddingLeft(1)
	BannerInfoStyle = banner.BorderForeground(p.Secondary)
	BannerSuccessStyle = banner.BorderForeground(p.Success)
	BannerWarningStyle = banner.BorderForeground(p.Warning)
	BannerDangerStyle = banner.BorderForeground(p.Error)

	SearchPromptStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	BackToTopStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
}

// BannerStyle returns the style for a banner severity. Unknown severities
// render like info banners.
func BannerStyle(severity string) lipgloss.Style {
	switch severity {
	case "success":
		return BannerSuccessStyle
	case "warning":
		return BannerWarningStyle
	case "danger":
		return BannerDangerStyle
	default:
		return BannerInfoStyle
	}
}

// BannerIcon returns the icon drawn in front of a banner message.
func BannerIcon(severity string) string {
	switch severity {
	case "success":
		return IconSuccess
	case "warning":
		return IconWarning
	case "danger":
		return IconDanger
	default:
		return IconInfo
	}
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
