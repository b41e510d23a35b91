package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Evaluation is one full computation: sanitised inputs, both regimes and the verdict
type Evaluation struct {
	Inputs     domain.TaxInputs        `json:"inputs"`
	Old        domain.TaxBreakdown     `json:"oldRegime"`
	New        domain.TaxBreakdown     `json:"newRegime"`
	Comparison domain.RegimeComparison `json:"comparison"`
	Warnings   []string                `json:"warnings,omitempty"`
}

// Recommended returns the breakdown of the cheaper regime
func (e Evaluation) Recommended() domain.TaxBreakdown {
	if e.Comparison.Cheaper == domain.RegimeNew {
		return e.New
	}
	return e.Old
}

// Engine evaluates both regimes for a set of inputs.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	OldRegime *RegimeRules
	NewRegime *RegimeRules
	Logger    Logger
}

// NewEngine creates an engine with the embedded regime tables
func NewEngine() *Engine {
	return &Engine{
		OldRegime: OldRegimeRules(),
		NewRegime: NewRegimeRules(),
		Logger:    NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil installs a NopLogger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Evaluate sanitises raw text inputs and computes both regimes
func (e *Engine) Evaluate(raw domain.RawTaxInputs) Evaluation {
	warnings := InputWarnings(raw)
	for _, w := range warnings {
		e.Logger.Warnf("input degraded: %s", w)
	}
	eval := e.EvaluateInputs(ParseInputs(raw))
	eval.Warnings = warnings
	return eval
}

// EvaluateInputs computes both regimes for already-sanitised inputs
func (e *Engine) EvaluateInputs(inputs domain.TaxInputs) Evaluation {
	oldB := e.OldRegime.Calculate(inputs)
	newB := e.NewRegime.Calculate(inputs)
	cmp := CompareRegimes(oldB, newB)

	e.Logger.Debugf("old regime: taxable=%s tax=%s total=%s",
		oldB.TaxableIncome.String(), oldB.TotalTax.String(), oldB.TotalTaxWithCess.String())
	e.Logger.Debugf("new regime: taxable=%s tax=%s total=%s",
		newB.TaxableIncome.String(), newB.TotalTax.String(), newB.TotalTaxWithCess.String())
	e.Logger.Infof("%s cheaper by %s", cmp.Cheaper.String(), cmp.AbsSavings().String())

	return Evaluation{
		Inputs:     inputs,
		Old:        oldB,
		New:        newB,
		Comparison: cmp,
	}
}
