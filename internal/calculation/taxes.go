package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Two embedded slab tables (old and new regime); no per-year configuration.
// 2. Standard deduction: 50,000 under both regimes.
// 3. Old regime caps: Section 80C 150,000, Section 80D 25,000, other deductions uncapped.
// 4. New regime allows only the standard deduction.
// 5. Health and education cess: 4% of slab tax under both regimes.
// 6. Slab thresholds do not depend on age category.

// TaxSlab represents one progressive income slab. A zero Max marks the
// open-ended top slab.
type TaxSlab struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// RegimeRules holds one regime's deductions, caps, slabs and cess rate
type RegimeRules struct {
	Regime            domain.Regime
	StandardDeduction decimal.Decimal
	Section80CCap     decimal.Decimal
	Section80DCap     decimal.Decimal
	AllowItemized     bool // 80C, 80D and other deductions
	Slabs             []TaxSlab
	CessRate          decimal.Decimal
}

// OldRegimeRules returns the rules of the deduction-heavy old regime
func OldRegimeRules() *RegimeRules {
	return &RegimeRules{
		Regime:            domain.RegimeOld,
		StandardDeduction: decimal.NewFromInt(50000),
		Section80CCap:     decimal.NewFromInt(150000),
		Section80DCap:     decimal.NewFromInt(25000),
		AllowItemized:     true,
		Slabs: []TaxSlab{
			{decimal.Zero, decimal.NewFromInt(250000), decimal.Zero},
			{decimal.NewFromInt(250000), decimal.NewFromInt(500000), decimal.NewFromFloat(0.05)},
			{decimal.NewFromInt(500000), decimal.NewFromInt(1000000), decimal.NewFromFloat(0.20)},
			{decimal.NewFromInt(1000000), decimal.Zero, decimal.NewFromFloat(0.30)},
		},
		CessRate: decimal.NewFromFloat(0.04),
	}
}

// NewRegimeRules returns the rules of the lower-rate new regime
func NewRegimeRules() *RegimeRules {
	return &RegimeRules{
		Regime:            domain.RegimeNew,
		StandardDeduction: decimal.NewFromInt(50000),
		AllowItemized:     false,
		Slabs: []TaxSlab{
			{decimal.Zero, decimal.NewFromInt(300000), decimal.Zero},
			{decimal.NewFromInt(300000), decimal.NewFromInt(600000), decimal.NewFromFloat(0.05)},
			{decimal.NewFromInt(600000), decimal.NewFromInt(900000), decimal.NewFromFloat(0.10)},
			{decimal.NewFromInt(900000), decimal.NewFromInt(1200000), decimal.NewFromFloat(0.15)},
			{decimal.NewFromInt(1200000), decimal.NewFromInt(1500000), decimal.NewFromFloat(0.20)},
			{decimal.NewFromInt(1500000), decimal.Zero, decimal.NewFromFloat(0.30)},
		},
		CessRate: decimal.NewFromFloat(0.04),
	}
}

// Calculate applies the regime's deductions, slabs and cess to the inputs
func (rr *RegimeRules) Calculate(inputs domain.TaxInputs) domain.TaxBreakdown {
	gross := nonNegative(inputs.GrossIncome)

	breakdown := domain.TaxBreakdown{
		Regime:            rr.Regime,
		GrossIncome:       gross,
		StandardDeduction: rr.StandardDeduction,
		Section80C:        decimal.Zero,
		Section80D:        decimal.Zero,
		OtherDeductions:   decimal.Zero,
	}

	if rr.AllowItemized {
		breakdown.Section80C = capAt(nonNegative(inputs.Section80C), rr.Section80CCap)
		breakdown.Section80D = capAt(nonNegative(inputs.Section80D), rr.Section80DCap)
		breakdown.OtherDeductions = nonNegative(inputs.OtherDeductions)
	}

	taxable := gross.Sub(breakdown.TotalDeductions())
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}
	breakdown.TaxableIncome = taxable

	breakdown.TotalTax = rr.SlabTax(taxable)
	breakdown.Cess = breakdown.TotalTax.Mul(rr.CessRate)
	breakdown.TotalTaxWithCess = breakdown.TotalTax.Add(breakdown.Cess)

	return breakdown
}

// SlabTax sums the marginal tax of every slab the taxable income reaches
func (rr *RegimeRules) SlabTax(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	for _, slab := range rr.Slabs {
		if taxableIncome.LessThanOrEqual(slab.Min) {
			break
		}
		upper := taxableIncome
		if !slab.Max.IsZero() {
			upper = decimal.Min(taxableIncome, slab.Max)
		}
		incomeInSlab := upper.Sub(slab.Min)
		if incomeInSlab.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInSlab.Mul(slab.Rate))
		}
	}

	return totalTax
}

// ExemptionLimit returns the upper bound of the zero-rate slab
func (rr *RegimeRules) ExemptionLimit() decimal.Decimal {
	for _, slab := range rr.Slabs {
		if slab.Rate.IsZero() {
			return slab.Max
		}
	}
	return decimal.Zero
}

// MarginalRate returns the rate applied to the next unit of taxable income
func (rr *RegimeRules) MarginalRate(taxableIncome decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, slab := range rr.Slabs {
		if taxableIncome.LessThan(slab.Min) {
			break
		}
		rate = slab.Rate
	}
	return rate
}

var (
	oldRegime = OldRegimeRules()
	newRegime = NewRegimeRules()
)

// RulesFor returns a copy of the embedded rules for a regime; nil when unknown
func RulesFor(r domain.Regime) *RegimeRules {
	switch r {
	case domain.RegimeOld:
		return OldRegimeRules()
	case domain.RegimeNew:
		return NewRegimeRules()
	default:
		return nil
	}
}

// ComputeOldRegime computes the old-regime breakdown for sanitised inputs
func ComputeOldRegime(inputs domain.TaxInputs) domain.TaxBreakdown {
	return oldRegime.Calculate(inputs)
}

// ComputeNewRegime computes the new-regime breakdown for sanitised inputs
func ComputeNewRegime(inputs domain.TaxInputs) domain.TaxBreakdown {
	return newRegime.Calculate(inputs)
}

// CompareRegimes reports which regime is cheaper. A tie recommends the old regime.
func CompareRegimes(oldB, newB domain.TaxBreakdown) domain.RegimeComparison {
	savings := oldB.TotalTaxWithCess.Sub(newB.TotalTaxWithCess)
	cheaper := domain.RegimeOld
	if savings.GreaterThan(decimal.Zero) {
		cheaper = domain.RegimeNew
	}
	return domain.RegimeComparison{Savings: savings, Cheaper: cheaper}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}

func capAt(d, limit decimal.Decimal) decimal.Decimal {
	return decimal.Min(d, limit)
}
