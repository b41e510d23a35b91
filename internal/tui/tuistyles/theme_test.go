package tuistyles

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestThemeByName(t *testing.T) {
	assert.True(t, ThemeByName("dark").IsDark())
	assert.True(t, ThemeByName(" DARK ").IsDark())
	assert.False(t, ThemeByName("light").IsDark())
	assert.False(t, ThemeByName("").IsDark())
}

func TestThemeToggle(t *testing.T) {
	light := LightTheme()
	assert.Equal(t, ThemeDark, light.Toggle().Name)
	assert.Equal(t, ThemeLight, light.Toggle().Toggle().Name)
}

func TestNewStyles_FollowTheme(t *testing.T) {
	dark := NewStyles(DarkTheme())
	light := NewStyles(LightTheme())

	assert.Equal(t, DarkTheme().Primary, dark.Title.GetForeground())
	assert.Equal(t, LightTheme().Primary, light.Title.GetForeground())
	assert.NotEqual(t, dark.Title.GetForeground(), light.Title.GetForeground())
}

func TestTrendHelpers(t *testing.T) {
	s := NewStyles(LightTheme())
	assert.Equal(t, "▲", TrendIndicator(true))
	assert.Equal(t, "▼", TrendIndicator(false))
	assert.Equal(t, LightTheme().Success, s.MetricTrendStyle(true).GetForeground())
	assert.Equal(t, LightTheme().Danger, s.MetricTrendStyle(false).GetForeground())
	assert.Equal(t, "₹12,00,000", FormatCurrency(decimal.NewFromInt(1200000)))
}
