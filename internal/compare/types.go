package compare

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/money"
	"github.com/shopspring/decimal"
)

// ProfileSummary is the slice of a profile shown on a report
type ProfileSummary struct {
	Name     string             `json:"name"`
	Age      *int               `json:"age,omitempty"`
	Category domain.AgeCategory `json:"category"`
	Salaried bool               `json:"salaried"`
	Metro    bool               `json:"residingInMetro"`
}

// Report is everything a display layer needs for one computation
type Report struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	Source      string                  `json:"source,omitempty"`
	Inputs      domain.TaxInputs        `json:"inputs"`
	Warnings    []string                `json:"warnings,omitempty"`
	Old         domain.TaxBreakdown     `json:"oldRegime"`
	New         domain.TaxBreakdown     `json:"newRegime"`
	Comparison  domain.RegimeComparison `json:"comparison"`
	BreakEven   *breakeven.Result       `json:"breakEven,omitempty"`
	Plan        *breakeven.Plan         `json:"plan,omitempty"`
	Profile     *ProfileSummary         `json:"profile,omitempty"`

	Recommendations []string `json:"recommendations"`
}

// Recommended returns the breakdown of the cheaper regime
func (r *Report) Recommended() domain.TaxBreakdown {
	if r.Comparison.Cheaper == domain.RegimeNew {
		return r.New
	}
	return r.Old
}

// ReportRow is one line of the side-by-side regime table
type ReportRow struct {
	Label string
	Old   decimal.Decimal
	New   decimal.Decimal
}

// Rows returns the side-by-side table shared by the tabular formatters
func (r *Report) Rows() []ReportRow {
	return []ReportRow{
		{"Gross Income", r.Old.GrossIncome, r.New.GrossIncome},
		{"Standard Deduction", r.Old.StandardDeduction, r.New.StandardDeduction},
		{"Section 80C", r.Old.Section80C, r.New.Section80C},
		{"Section 80D", r.Old.Section80D, r.New.Section80D},
		{"Other Deductions", r.Old.OtherDeductions, r.New.OtherDeductions},
		{"Total Deductions", r.Old.TotalDeductions(), r.New.TotalDeductions()},
		{"Taxable Income", r.Old.TaxableIncome, r.New.TaxableIncome},
		{"Tax", r.Old.TotalTax, r.New.TotalTax},
		{"Cess (4%)", r.Old.Cess, r.New.Cess},
		{"Total Tax", r.Old.TotalTaxWithCess, r.New.TotalTaxWithCess},
	}
}

// GenerateRecommendations creates recommendations based on the report contents
func GenerateRecommendations(r *Report) []string {
	recommendations := []string{}

	if r.Inputs.GrossIncome.IsZero() {
		recommendations = append(recommendations,
			"Enter a gross income above zero to compare the two regimes")
		return recommendations
	}

	switch {
	case r.Comparison.IsTie():
		recommendations = append(recommendations,
			fmt.Sprintf("Both regimes cost %s; the Old Regime is recommended on a tie",
				money.FormatINR(r.Old.TotalTaxWithCess)))
	default:
		recommendations = append(recommendations,
			fmt.Sprintf("%s saves %s (%s vs %s)",
				r.Comparison.Cheaper.String(),
				money.FormatINR(r.Comparison.AbsSavings()),
				money.FormatINR(r.Recommended().TotalTaxWithCess),
				money.FormatINR(r.other().TotalTaxWithCess)))
	}

	if r.BreakEven != nil {
		h := r.BreakEven.Headroom
		if h.Section80C.IsPositive() {
			recommendations = append(recommendations,
				fmt.Sprintf("Unused Section 80C headroom: %s", money.FormatINR(h.Section80C)))
		}
		if h.Section80D.IsPositive() {
			recommendations = append(recommendations,
				fmt.Sprintf("Unused Section 80D headroom: %s", money.FormatINR(h.Section80D)))
		}
		if !r.BreakEven.AlreadyCheaper {
			recommendations = append(recommendations,
				fmt.Sprintf("The Old Regime breaks even with %s of additional deductions",
					money.FormatINR(r.BreakEven.ExtraDeduction)))
		}
	}

	if r.Profile != nil && r.Profile.Age != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Age category %s is shown for reference; slab rates do not change with age",
				r.Profile.Category))
	}

	return recommendations
}

func (r *Report) other() domain.TaxBreakdown {
	if r.Comparison.Cheaper == domain.RegimeNew {
		return r.Old
	}
	return r.New
}
