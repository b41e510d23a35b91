package domain

import (
	"github.com/shopspring/decimal"
)

// Regime identifies one of the two mutually exclusive tax computation schemes
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// String returns a display label for the regime
func (r Regime) String() string {
	switch r {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	default:
		return "Unknown Regime"
	}
}

// RawTaxInputs holds the four free-text amounts as entered by a user
type RawTaxInputs struct {
	GrossIncome     string `yaml:"gross_income" json:"grossIncome"`
	Section80C      string `yaml:"section_80c" json:"section80C"`
	Section80D      string `yaml:"section_80d" json:"section80D"`
	OtherDeductions string `yaml:"other_deductions" json:"otherDeductions"`
}

// TaxInputs holds sanitised, non-negative amounts for a single computation
type TaxInputs struct {
	GrossIncome     decimal.Decimal `json:"grossIncome"`
	Section80C      decimal.Decimal `json:"section80C"`
	Section80D      decimal.Decimal `json:"section80D"`
	OtherDeductions decimal.Decimal `json:"otherDeductions"`
}

// TaxBreakdown is the result of computing tax under one regime.
// Deduction fields hold the amounts actually applied after caps.
type TaxBreakdown struct {
	Regime            Regime          `json:"regime"`
	GrossIncome       decimal.Decimal `json:"grossIncome"`
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	Section80C        decimal.Decimal `json:"section80C"`
	Section80D        decimal.Decimal `json:"section80D"`
	OtherDeductions   decimal.Decimal `json:"otherDeductions"`
	TaxableIncome     decimal.Decimal `json:"taxableIncome"`
	TotalTax          decimal.Decimal `json:"totalTax"`
	Cess              decimal.Decimal `json:"cess"`
	TotalTaxWithCess  decimal.Decimal `json:"totalTaxWithCess"`
}

// TotalDeductions returns the sum of all applied deductions
func (tb TaxBreakdown) TotalDeductions() decimal.Decimal {
	return tb.StandardDeduction.Add(tb.Section80C).Add(tb.Section80D).Add(tb.OtherDeductions)
}

// EffectiveRate returns the final liability as a fraction of gross income
func (tb TaxBreakdown) EffectiveRate() decimal.Decimal {
	if tb.GrossIncome.IsZero() {
		return decimal.Zero
	}
	return tb.TotalTaxWithCess.Div(tb.GrossIncome)
}

// RegimeComparison describes which regime is cheaper.
// Savings is signed: old total minus new total.
type RegimeComparison struct {
	Savings decimal.Decimal `json:"savings"`
	Cheaper Regime          `json:"cheaper"`
}

// AbsSavings returns the magnitude of the difference between the two regimes
func (rc RegimeComparison) AbsSavings() decimal.Decimal {
	return rc.Savings.Abs()
}

// IsTie reports whether both regimes produce the same liability
func (rc RegimeComparison) IsTie() bool {
	return rc.Savings.IsZero()
}
