package calculation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ParseNonNegative converts free text to a non-negative amount.
// Empty, unparseable and negative input all yield zero.
func ParseNonNegative(text string) decimal.Decimal {
	d, err := parseAmount(text)
	if err != nil || d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}

// ParseInputs sanitises every raw field with ParseNonNegative
func ParseInputs(raw domain.RawTaxInputs) domain.TaxInputs {
	return domain.TaxInputs{
		GrossIncome:     ParseNonNegative(raw.GrossIncome),
		Section80C:      ParseNonNegative(raw.Section80C),
		Section80D:      ParseNonNegative(raw.Section80D),
		OtherDeductions: ParseNonNegative(raw.OtherDeductions),
	}
}

// InputWarnings lists the non-empty fields that were degraded to zero
func InputWarnings(raw domain.RawTaxInputs) []string {
	fields := []struct {
		name  string
		value string
	}{
		{"gross_income", raw.GrossIncome},
		{"section_80c", raw.Section80C},
		{"section_80d", raw.Section80D},
		{"other_deductions", raw.OtherDeductions},
	}

	var warnings []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		d, err := parseAmount(f.value)
		switch {
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("%s: %q %s, treated as 0", f.name, f.value, err))
		case d.LessThan(decimal.Zero):
			warnings = append(warnings, fmt.Sprintf("%s: %q is negative, treated as 0", f.name, f.value))
		}
	}
	return warnings
}

// Bounds on accepted amounts; anything outside them degrades to zero
const (
	maxAmountLength   = 40
	maxAmountExponent = 20
)

var (
	maxAmount = decimal.New(1, 15)

	errNotNumber  = errors.New("is not a number")
	errOutOfRange = errors.New("is out of range")
)

// parseAmount accepts plain decimals with optional "," digit grouping
// (both 1,200,000 and 12,00,000 style). Overlong text, extreme exponents
// and magnitudes of 10^15 or more are rejected.
func parseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, errNotNumber
	}
	s = strings.ReplaceAll(s, ",", "")
	if len(s) > maxAmountLength {
		return decimal.Zero, errOutOfRange
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errNotNumber
	}
	// checked before any arithmetic, which would rescale the coefficient
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, errOutOfRange
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, errOutOfRange
	}
	return d, nil
}
