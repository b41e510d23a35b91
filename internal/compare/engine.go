package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/profile"
)

// Engine builds reports from raw inputs
type Engine struct {
	CalcEngine *calculation.Engine
	Solver     *breakeven.Solver
	Now        func() time.Time
}

// NewEngine creates a report engine on top of a calculation engine
func NewEngine(calcEngine *calculation.Engine) *Engine {
	return &Engine{
		CalcEngine: calcEngine,
		Solver:     breakeven.NewDefaultSolver(calcEngine),
		Now:        time.Now,
	}
}

// Build evaluates both regimes, runs the break-even solver and attaches
// the profile's age category when a profile is given.
func (e *Engine) Build(ctx context.Context, raw domain.RawTaxInputs, p *domain.Profile) (*Report, error) {
	eval := e.CalcEngine.Evaluate(raw)
	return e.BuildFromEvaluation(ctx, eval, p)
}

// BuildFromEvaluation builds a report from an evaluation that has already been computed
func (e *Engine) BuildFromEvaluation(ctx context.Context, eval calculation.Evaluation, p *domain.Profile) (*Report, error) {
	now := e.Now()

	report := &Report{
		GeneratedAt: now,
		Inputs:      eval.Inputs,
		Warnings:    eval.Warnings,
		Old:         eval.Old,
		New:         eval.New,
		Comparison:  eval.Comparison,
	}

	result, err := e.Solver.Solve(ctx, eval.Inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to solve break-even: %w", err)
	}
	report.BreakEven = result

	if !result.AlreadyCheaper {
		plan, err := e.Solver.PlanDeductions(ctx, eval.Inputs)
		if err != nil {
			return nil, fmt.Errorf("failed to plan deductions: %w", err)
		}
		report.Plan = plan
	}

	if p != nil {
		report.Profile = summarize(p, now)
	}

	report.Recommendations = GenerateRecommendations(report)

	return report, nil
}

func summarize(p *domain.Profile, now time.Time) *ProfileSummary {
	summary := &ProfileSummary{
		Name:     p.Name,
		Category: domain.AgeCategoryGeneral,
		Salaried: p.Salaried,
		Metro:    p.ResidingInMetro,
	}
	if age, category, ok := profile.CategoryOf(p, now); ok {
		summary.Age = &age
		summary.Category = category
	}
	return summary
}
