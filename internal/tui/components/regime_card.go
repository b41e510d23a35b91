package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

type cardRow struct {
	label string
	value string
}

// RegimeCard displays one regime's breakdown
type RegimeCard struct {
	Breakdown   domain.TaxBreakdown
	Recommended bool
	Width       int
}

// NewRegimeCard creates a card for a breakdown
func NewRegimeCard(b domain.TaxBreakdown) *RegimeCard {
	return &RegimeCard{Breakdown: b, Width: 38}
}

// SetRecommended marks the card as the cheaper regime
func (r *RegimeCard) SetRecommended(recommended bool) *RegimeCard {
	r.Recommended = recommended
	return r
}

// WithWidth sets the card width
func (r *RegimeCard) WithWidth(width int) *RegimeCard {
	r.Width = width
	return r
}

// Render returns the styled card
func (r *RegimeCard) Render(s tuistyles.Styles) string {
	b := r.Breakdown
	var content strings.Builder

	title := s.Section.Render(b.Regime.String())
	if r.Recommended {
		title += " " + s.MetricPositive.Render("✓ recommended")
	}
	content.WriteString(title)
	content.WriteString("\n\n")

	rows := []cardRow{
		{"Gross income", tuistyles.FormatCurrency(b.GrossIncome)},
		{"Standard deduction", tuistyles.FormatCurrency(b.StandardDeduction)},
		{"Section 80C", tuistyles.FormatCurrency(b.Section80C)},
		{"Section 80D", tuistyles.FormatCurrency(b.Section80D)},
		{"Other deductions", tuistyles.FormatCurrency(b.OtherDeductions)},
		{"Taxable income", tuistyles.FormatCurrency(b.TaxableIncome)},
		{"Tax", tuistyles.FormatCurrency(b.TotalTax)},
		{"Cess (4%)", tuistyles.FormatCurrency(b.Cess)},
	}
	if rules := calculation.RulesFor(b.Regime); rules != nil {
		rows = append(rows,
			cardRow{"Tax-free up to", tuistyles.FormatCurrency(rules.ExemptionLimit())},
			cardRow{"Marginal rate", rules.MarginalRate(b.TaxableIncome).Shift(2).StringFixed(0) + "%"},
		)
	}

	inner := r.Width - 6
	for _, row := range rows {
		content.WriteString(alignRow(s.Label.Render(row.label), s.Value.Render(row.value), inner))
		content.WriteString("\n")
	}
	content.WriteString(alignRow(s.MetricLabel.Render("Total"),
		s.MetricValue.Render(tuistyles.FormatCurrency(b.TotalTaxWithCess)), inner))

	style := s.Border
	if r.Recommended {
		style = s.ActiveBorder
	}
	return style.Width(r.Width).Render(content.String())
}

func alignRow(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
