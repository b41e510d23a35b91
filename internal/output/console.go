package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the detailed side-by-side console report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *compare.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintln(&buf, "INCOME TAX REGIME COMPARISON")
	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	if report.Source != "" {
		fmt.Fprintf(&buf, "Input: %s\n", report.Source)
	}
	if report.Profile != nil {
		fmt.Fprintf(&buf, "Profile: %s", report.Profile.Name)
		if report.Profile.Age != nil {
			fmt.Fprintf(&buf, " (age %d, %s)", *report.Profile.Age, report.Profile.Category)
		}
		fmt.Fprintln(&buf)
	}
	fmt.Fprintln(&buf)

	if len(report.Warnings) > 0 {
		fmt.Fprintln(&buf, "INPUT WARNINGS:")
		for _, w := range report.Warnings {
			fmt.Fprintf(&buf, "⚠ %s\n", w)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "%-22s %18s %18s\n", "", "Old Regime", "New Regime")
	fmt.Fprintln(&buf, strings.Repeat("-", 64))
	for i, row := range report.Rows() {
		if i == len(report.Rows())-1 {
			fmt.Fprintln(&buf, strings.Repeat("-", 64))
		}
		fmt.Fprintf(&buf, "%-22s %18s %18s\n", row.Label, FormatCurrency(row.Old), FormatCurrency(row.New))
	}
	fmt.Fprintf(&buf, "%-22s %18s %18s\n", "Effective Rate",
		FormatPercentage(report.Old.EffectiveRate()), FormatPercentage(report.New.EffectiveRate()))
	fmt.Fprintf(&buf, "%-22s %18s %18s\n", "Marginal Rate",
		FormatPercentage(marginalRate(report.Old)), FormatPercentage(marginalRate(report.New)))
	fmt.Fprintf(&buf, "%-22s %18s %18s\n", "Tax-free Up To",
		FormatCurrency(calculation.OldRegimeRules().ExemptionLimit()), FormatCurrency(calculation.NewRegimeRules().ExemptionLimit()))
	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RECOMMENDATION:")
	fmt.Fprintf(&buf, "  %s", report.Comparison.Cheaper.String())
	if !report.Comparison.IsTie() {
		fmt.Fprintf(&buf, " (saves %s)", FormatCurrency(report.Comparison.AbsSavings()))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf)

	if report.Plan != nil && len(report.Plan.Allocations) > 0 {
		fmt.Fprintln(&buf, "DEDUCTIONS NEEDED FOR THE OLD REGIME TO BREAK EVEN:")
		for _, a := range report.Plan.Allocations {
			fmt.Fprintf(&buf, "  %-18s %s\n", a.Category, FormatCurrency(a.Amount))
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintln(&buf, "NOTES:")
		for _, r := range report.Recommendations {
			fmt.Fprintf(&buf, "• %s\n", r)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	return buf.Bytes(), nil
}

// marginalRate is the slab rate on the next rupee of taxable income
func marginalRate(b domain.TaxBreakdown) decimal.Decimal {
	rules := calculation.RulesFor(b.Regime)
	if rules == nil {
		return decimal.Zero
	}
	return rules.MarginalRate(b.TaxableIncome)
}

// ConsoleLiteFormatter prints a three-line summary
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *compare.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Old Regime: %s\n", FormatCurrency(report.Old.TotalTaxWithCess))
	fmt.Fprintf(&buf, "New Regime: %s\n", FormatCurrency(report.New.TotalTaxWithCess))
	fmt.Fprintf(&buf, "Recommended: %s (difference %s)\n",
		report.Comparison.Cheaper.String(), FormatCurrency(report.Comparison.AbsSavings()))
	return buf.Bytes(), nil
}
