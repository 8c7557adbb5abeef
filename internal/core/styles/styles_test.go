package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizfindr/bizfindr/internal/core/config"
)

func TestThemeNamesMatchConfig(t *testing.T) {
	assert.ElementsMatch(t, config.Themes, ThemeNames())
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)

	SetTheme(p)
	assert.Equal(t, p, CurrentPalette)
	assert.Equal(t, p.Error, BannerDangerStyle.GetBorderLeftForeground())
}

func TestBannerStyleFallsBackToInfo(t *testing.T) {
	assert.Equal(t, BannerInfoStyle.GetBorderLeftForeground(), BannerStyle("primary").GetBorderLeftForeground())
	assert.Equal(t, IconInfo, BannerIcon("primary"))
	assert.Equal(t, IconDanger, BannerIcon("danger"))
}

func TestGetPalette_Unknown(t *testing.T) {
	_, ok := GetPalette("neon")
	assert.False(t, ok)
}
