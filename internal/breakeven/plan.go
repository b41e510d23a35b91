package breakeven

import (
	"context"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Plan categories
const (
	CategorySection80C = "section_80c"
	CategorySection80D = "section_80d"
	CategoryOther      = "other_deductions"
)

// PlanDeductions fills unused 80C headroom first, then 80D, then uncapped
// other deductions, stopping as soon as the old regime is no dearer.
func (s *Solver) PlanDeductions(ctx context.Context, inputs domain.TaxInputs) (*Plan, error) {
	result, err := s.Solve(ctx, inputs)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		AlreadyCheaper: result.AlreadyCheaper,
		Total:          decimal.Zero,
		OldTotal:       result.OldTotal,
		NewTotal:       result.NewTotal,
	}
	if result.AlreadyCheaper {
		return plan, nil
	}

	current := inputs
	steps := []struct {
		category string
		room     decimal.Decimal
		apply    func(in domain.TaxInputs, amount decimal.Decimal) domain.TaxInputs
	}{
		{CategorySection80C, result.Headroom.Section80C, func(in domain.TaxInputs, amount decimal.Decimal) domain.TaxInputs {
			in.Section80C = s.appliedOld(in).Section80C.Add(amount)
			return in
		}},
		{CategorySection80D, result.Headroom.Section80D, func(in domain.TaxInputs, amount decimal.Decimal) domain.TaxInputs {
			in.Section80D = s.appliedOld(in).Section80D.Add(amount)
			return in
		}},
		{CategoryOther, s.appliedOld(inputs).TaxableIncome, func(in domain.TaxInputs, amount decimal.Decimal) domain.TaxInputs {
			in.OtherDeductions = in.OtherDeductions.Add(amount)
			return in
		}},
	}

	for _, step := range steps {
		if !step.room.IsPositive() {
			continue
		}
		base := current
		apply := func(amount decimal.Decimal) domain.TaxInputs { return step.apply(base, amount) }

		if s.oldTotal(apply(step.room)).GreaterThan(result.NewTotal) {
			plan.Allocations = append(plan.Allocations, Allocation{Category: step.category, Amount: step.room})
			plan.Total = plan.Total.Add(step.room)
			current = apply(step.room)
			continue
		}

		amount, _, _, err := s.search(ctx, step.room, result.NewTotal, apply)
		if err != nil {
			return nil, err
		}
		amount = decimal.Min(amount, step.room)
		plan.Allocations = append(plan.Allocations, Allocation{Category: step.category, Amount: amount})
		plan.Total = plan.Total.Add(amount)
		break
	}

	return plan, nil
}

func (s *Solver) appliedOld(inputs domain.TaxInputs) domain.TaxBreakdown {
	return s.CalcEngine.OldRegime.Calculate(inputs)
}
