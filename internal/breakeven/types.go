package breakeven

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // Search step in rupees
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 200,
	}
}

// Validate checks the options before a search
func (o SolverOptions) Validate() error {
	if !o.Tolerance.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "tolerance must be positive",
		}
	}
	if o.MaxIterations <= 0 {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "max iterations must be positive",
		}
	}
	return nil
}

// Headroom is the unused capacity under the capped old-regime deductions
type Headroom struct {
	Section80C decimal.Decimal `json:"section80C"`
	Section80D decimal.Decimal `json:"section80D"`
}

// Total returns the combined unused capacity
func (h Headroom) Total() decimal.Decimal {
	return h.Section80C.Add(h.Section80D)
}

// Result describes how far the old regime is from matching the new one
type Result struct {
	Inputs         domain.TaxInputs `json:"inputs"`
	AlreadyCheaper bool             `json:"alreadyCheaper"`

	// ExtraDeduction is the smallest additional uncapped deduction that
	// brings the old-regime total to or below the new-regime total.
	ExtraDeduction      decimal.Decimal `json:"extraDeduction"`
	OldTotal            decimal.Decimal `json:"oldTotal"`
	NewTotal            decimal.Decimal `json:"newTotal"`
	OldTotalAtBreakEven decimal.Decimal `json:"oldTotalAtBreakEven"`

	Headroom Headroom `json:"headroom"`

	// HeadroomSufficient reports whether maxing 80C and 80D alone closes the gap
	HeadroomSufficient bool `json:"headroomSufficient"`

	Iterations      int    `json:"iterations"`
	Converged       bool   `json:"converged"`
	ConvergenceInfo string `json:"convergenceInfo,omitempty"`
}

// Allocation is one step of a deduction plan
type Allocation struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Plan spreads the break-even amount over 80C, 80D and other deductions,
// filling the capped categories first.
type Plan struct {
	AlreadyCheaper bool            `json:"alreadyCheaper"`
	Allocations    []Allocation    `json:"allocations"`
	Total          decimal.Decimal `json:"total"`
	OldTotal       decimal.Decimal `json:"oldTotal"`
	NewTotal       decimal.Decimal `json:"newTotal"`
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
