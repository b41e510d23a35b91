package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// UsageBar shows how much of a capped deduction has been claimed
type UsageBar struct {
	Label string
	Used  decimal.Decimal
	Cap   decimal.Decimal
	Width int
}

// NewUsageBar creates a usage bar for a claimed amount against its cap
func NewUsageBar(label string, used, limit decimal.Decimal) *UsageBar {
	return &UsageBar{
		Label: label,
		Used:  used,
		Cap:   limit,
		Width: 30,
	}
}

// WithWidth sets the bar width
func (u *UsageBar) WithWidth(width int) *UsageBar {
	u.Width = width
	return u
}

// Percentage returns the claimed share of the cap, clamped to 0..100
func (u *UsageBar) Percentage() float64 {
	if !u.Cap.IsPositive() {
		return 0
	}
	pct := u.Used.Div(u.Cap).Mul(decimal.NewFromInt(100)).InexactFloat64()
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// IsComplete reports whether the cap is fully used
func (u *UsageBar) IsComplete() bool {
	return u.Cap.IsPositive() && u.Used.GreaterThanOrEqual(u.Cap)
}

// Render returns the styled bar
func (u *UsageBar) Render(s tuistyles.Styles) string {
	var content strings.Builder

	if u.Label != "" {
		content.WriteString(s.Label.Render(u.Label))
		content.WriteString("\n")
	}

	percentage := u.Percentage()
	filled := int(float64(u.Width) * percentage / 100)
	if filled > u.Width {
		filled = u.Width
	}
	empty := u.Width - filled

	barColor := s.Theme.Accent
	if u.IsComplete() {
		barColor = s.Theme.Success
	}
	barStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(s.Theme.Border)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("] ")

	content.WriteString(s.MetricValue.Render(fmt.Sprintf("%.0f%%", percentage)))
	content.WriteString(" ")
	content.WriteString(s.Subtitle.Render(fmt.Sprintf("%s of %s",
		tuistyles.FormatCurrency(decimal.Min(u.Used, u.Cap)), tuistyles.FormatCurrency(u.Cap))))

	return content.String()
}
