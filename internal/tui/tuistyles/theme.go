// Package tuistyles holds the colour themes and lipgloss styles for the
// terminal UI. Styles are derived from an explicit Theme value so the
// active theme can be swapped without package-level state.
package tuistyles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/money"
)

// Theme names
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme is a named colour palette
type Theme struct {
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Danger    lipgloss.Color
	Info      lipgloss.Color

	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
}

// LightTheme is the default palette
func LightTheme() Theme {
	return Theme{
		Name:       ThemeLight,
		Primary:    lipgloss.Color("#1D4ED8"),
		Secondary:  lipgloss.Color("#7C3AED"),
		Accent:     lipgloss.Color("#D97706"),
		Success:    lipgloss.Color("#15803D"),
		Danger:     lipgloss.Color("#B91C1C"),
		Info:       lipgloss.Color("#0369A1"),
		Background: lipgloss.Color("#FFFFFF"),
		Foreground: lipgloss.Color("#111827"),
		Muted:      lipgloss.Color("#6B7280"),
		Border:     lipgloss.Color("#D1D5DB"),
	}
}

// DarkTheme is the dark-mode palette
func DarkTheme() Theme {
	return Theme{
		Name:       ThemeDark,
		Primary:    lipgloss.Color("#60A5FA"),
		Secondary:  lipgloss.Color("#A78BFA"),
		Accent:     lipgloss.Color("#FBBF24"),
		Success:    lipgloss.Color("#4ADE80"),
		Danger:     lipgloss.Color("#F87171"),
		Info:       lipgloss.Color("#38BDF8"),
		Background: lipgloss.Color("#111827"),
		Foreground: lipgloss.Color("#F9FAFB"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Border:     lipgloss.Color("#374151"),
	}
}

// ThemeByName returns the dark theme for "dark" and the light theme otherwise
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), ThemeDark) {
		return DarkTheme()
	}
	return LightTheme()
}

// IsDark reports whether t is the dark palette
func (t Theme) IsDark() bool {
	return t.Name == ThemeDark
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t.IsDark() {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles is the set of lipgloss styles rendered from a Theme
type Styles struct {
	Theme Theme

	App            lipgloss.Style
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Section        lipgloss.Style
	StatusBar      lipgloss.Style
	StatusKey      lipgloss.Style
	Border         lipgloss.Style
	ActiveBorder   lipgloss.Style
	SelectedItem   lipgloss.Style
	UnselectedItem lipgloss.Style
	MetricLabel    lipgloss.Style
	MetricValue    lipgloss.Style
	MetricPositive lipgloss.Style
	MetricNegative lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	Error          lipgloss.Style
	Info           lipgloss.Style
	Warning        lipgloss.Style
	TableHeader    lipgloss.Style
	TableCell      lipgloss.Style
	TableHighlight lipgloss.Style
}

// NewStyles renders the style set for t
func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,

		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(t.Muted),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		StatusBar: lipgloss.NewStyle().
			Foreground(t.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(t.Border),
		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),
		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),
		SelectedItem: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		UnselectedItem: lipgloss.NewStyle().
			Foreground(t.Foreground),
		MetricLabel: lipgloss.NewStyle().
			Foreground(t.Muted),
		MetricValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Foreground),
		MetricPositive: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Success),
		MetricNegative: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Danger),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Value: lipgloss.NewStyle().
			Foreground(t.Foreground),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Muted),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Danger),
		Info: lipgloss.NewStyle().
			Foreground(t.Info),
		Warning: lipgloss.NewStyle().
			Foreground(t.Accent),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		TableCell: lipgloss.NewStyle().
			Foreground(t.Foreground),
		TableHighlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Success),
	}
}

// MetricTrendStyle picks the positive or negative metric style
func (s Styles) MetricTrendStyle(positive bool) lipgloss.Style {
	if positive {
		return s.MetricPositive
	}
	return s.MetricNegative
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(positive bool) string {
	if positive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders an amount in rupees with Indian digit grouping
func FormatCurrency(amount decimal.Decimal) string {
	return money.FormatINR(amount)
}
