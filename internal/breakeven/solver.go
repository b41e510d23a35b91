package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the extra old-regime deduction at which the two regimes cost the same
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs a one-off search with the default engine
func Solve(ctx context.Context, inputs domain.TaxInputs, opts SolverOptions) (*Result, error) {
	return NewSolver(calculation.NewEngine(), opts).Solve(ctx, inputs)
}

// Solve bisects on OtherDeductions over [0, old taxable income]. Removing all
// taxable income zeroes the old-regime tax, so the upper bound always satisfies.
func (s *Solver) Solve(ctx context.Context, inputs domain.TaxInputs) (*Result, error) {
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}
	if s.CalcEngine == nil || s.CalcEngine.OldRegime == nil || s.CalcEngine.NewRegime == nil {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   "calculation engine is not initialized",
		}
	}

	old := s.CalcEngine.OldRegime.Calculate(inputs)
	newTotal := s.CalcEngine.NewRegime.Calculate(inputs).TotalTaxWithCess

	result := &Result{
		Inputs:              inputs,
		OldTotal:            old.TotalTaxWithCess,
		NewTotal:            newTotal,
		OldTotalAtBreakEven: old.TotalTaxWithCess,
		ExtraDeduction:      decimal.Zero,
		Headroom:            s.headroom(old),
	}

	maxed := inputs
	maxed.Section80C = s.CalcEngine.OldRegime.Section80CCap
	maxed.Section80D = s.CalcEngine.OldRegime.Section80DCap
	result.HeadroomSufficient = s.oldTotal(maxed).LessThanOrEqual(newTotal)

	if old.TotalTaxWithCess.LessThanOrEqual(newTotal) {
		result.AlreadyCheaper = true
		result.Converged = true
		result.ConvergenceInfo = "Old regime already cheaper or equal"
		return result, nil
	}

	withOther := func(extra decimal.Decimal) domain.TaxInputs {
		in := inputs
		in.OtherDeductions = in.OtherDeductions.Add(extra)
		return in
	}

	extra, iterations, converged, err := s.search(ctx, old.TaxableIncome, newTotal, withOther)
	if err != nil {
		return nil, err
	}

	result.ExtraDeduction = extra
	result.OldTotalAtBreakEven = s.oldTotal(withOther(extra))
	result.Iterations = iterations
	result.Converged = converged
	if converged {
		result.ConvergenceInfo = fmt.Sprintf("Converged within %s", s.Options.Tolerance.String())
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", s.Options.MaxIterations)
	}

	s.CalcEngine.Logger.Debugf("break-even extra deduction %s after %d iterations", extra.String(), iterations)

	return result, nil
}

// search finds the smallest amount on the tolerance grid in [0, upper] for
// which the old-regime total under apply(amount) is at most target. Zero is
// known not to satisfy.
func (s *Solver) search(ctx context.Context, upper, target decimal.Decimal,
	apply func(decimal.Decimal) domain.TaxInputs) (decimal.Decimal, int, bool, error) {

	tol := s.Options.Tolerance
	two := decimal.NewFromInt(2)

	lo := decimal.Zero
	hi := upper.Div(tol).Ceil().Mul(tol)
	iterations := 0

	for hi.Sub(lo).GreaterThan(tol) {
		if iterations >= s.Options.MaxIterations {
			return hi, iterations, false, nil
		}
		iterations++

		select {
		case <-ctx.Done():
			return decimal.Zero, iterations, false, ctx.Err()
		default:
		}

		steps := hi.Sub(lo).Div(tol).Ceil()
		mid := lo.Add(steps.Div(two).Floor().Mul(tol))

		if s.oldTotal(apply(mid)).LessThanOrEqual(target) {
			hi = mid
		} else {
			lo = mid
		}
	}

	return hi, iterations, true, nil
}

func (s *Solver) oldTotal(inputs domain.TaxInputs) decimal.Decimal {
	return s.CalcEngine.OldRegime.Calculate(inputs).TotalTaxWithCess
}

func (s *Solver) headroom(old domain.TaxBreakdown) Headroom {
	rules := s.CalcEngine.OldRegime
	return Headroom{
		Section80C: decimal.Max(decimal.Zero, rules.Section80CCap.Sub(old.Section80C)),
		Section80D: decimal.Max(decimal.Zero, rules.Section80DCap.Sub(old.Section80D)),
	}
}
