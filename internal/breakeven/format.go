package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("DEDUCTION BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Gross Income:          ₹%s\n", tf.formatCurrency(result.Inputs.GrossIncome)))
	sb.WriteString(fmt.Sprintf("Old Regime Total:      ₹%s\n", tf.formatCurrency(result.OldTotal)))
	sb.WriteString(fmt.Sprintf("New Regime Total:      ₹%s\n", tf.formatCurrency(result.NewTotal)))
	sb.WriteString(fmt.Sprintf("Status:                %s\n", tf.formatStatus(result)))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:           %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if !result.AlreadyCheaper {
		sb.WriteString("BREAK-EVEN\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Extra Deduction Needed: ₹%s\n", tf.formatCurrency(result.ExtraDeduction)))
		sb.WriteString(fmt.Sprintf("Old Regime At That Point: ₹%s\n", tf.formatCurrency(result.OldTotalAtBreakEven)))
		sb.WriteString(fmt.Sprintf("Iterations:             %d\n", result.Iterations))
		sb.WriteString("\n")
	}

	sb.WriteString("UNUSED HEADROOM (OLD REGIME)\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Section 80C:           ₹%s\n", tf.formatCurrency(result.Headroom.Section80C)))
	sb.WriteString(fmt.Sprintf("Section 80D:           ₹%s\n", tf.formatCurrency(result.Headroom.Section80D)))
	if !result.AlreadyCheaper {
		if result.HeadroomSufficient {
			sb.WriteString("Filling 80C and 80D alone makes the old regime competitive.\n")
		} else {
			sb.WriteString("Filling 80C and 80D alone is not enough.\n")
		}
	}

	return sb.String()
}

// FormatPlan formats a deduction plan
func (tf *TableFormatter) FormatPlan(plan *Plan) string {
	var sb strings.Builder

	sb.WriteString("DEDUCTION PLAN\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	if plan.AlreadyCheaper {
		sb.WriteString("No extra deductions needed; the old regime is already cheaper or equal.\n")
		return sb.String()
	}

	for _, a := range plan.Allocations {
		sb.WriteString(fmt.Sprintf("• %-18s ₹%s\n", a.Category, tf.formatCurrency(a.Amount)))
	}
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("  %-18s ₹%s\n", "total", tf.formatCurrency(plan.Total)))

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatPlan generates JSON output for a plan
func (jf *JSONFormatter) FormatPlan(plan *Plan) (string, error) {
	return jf.marshal(plan)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(result *Result) string {
	switch {
	case result.AlreadyCheaper:
		return "✓ Old regime already cheaper"
	case result.Converged:
		return "✓ Converged"
	default:
		return "⚠ Did not converge"
	}
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(0)
}
