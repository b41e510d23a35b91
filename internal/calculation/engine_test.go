package calculation

import (
	"sync"
	"testing"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.OldRegime, "Should initialize old regime rules")
	assert.NotNil(t, engine.NewRegime, "Should initialize new regime rules")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_Evaluate_ReferenceCase(t *testing.T) {
	engine := NewEngine()

	eval := engine.Evaluate(domain.RawTaxInputs{GrossIncome: "1200000"})

	assert.True(t, eval.Old.TotalTaxWithCess.Equal(decimal.NewFromInt(163800)))
	assert.True(t, eval.New.TotalTaxWithCess.Equal(decimal.NewFromInt(85800)))
	assert.True(t, eval.Comparison.Savings.Equal(decimal.NewFromInt(78000)))
	assert.Equal(t, domain.RegimeNew, eval.Comparison.Cheaper)
	assert.Equal(t, domain.RegimeNew, eval.Recommended().Regime)
	assert.Empty(t, eval.Warnings)
}

func TestEngine_Evaluate_WarnsAndLogs(t *testing.T) {
	engine := NewEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	eval := engine.Evaluate(domain.RawTaxInputs{
		GrossIncome: "abc",
		Section80C:  "-5",
	})

	require.Len(t, eval.Warnings, 2)
	assert.Contains(t, eval.Warnings[0], "gross_income")
	assert.Contains(t, eval.Warnings[1], "section_80c")
	assert.True(t, eval.Old.TotalTaxWithCess.IsZero())
	assert.True(t, eval.New.TotalTaxWithCess.IsZero())
	assert.Equal(t, domain.RegimeOld, eval.Comparison.Cheaper, "Tie should favour old regime")

	warns := 0
	for _, m := range logger.messages {
		if len(m) > 5 && m[:5] == "WARN:" {
			warns++
		}
	}
	assert.Equal(t, 2, warns)
}

func TestEngine_Evaluate_Idempotent(t *testing.T) {
	engine := NewEngine()
	raw := domain.RawTaxInputs{
		GrossIncome:     "1850000",
		Section80C:      "90000",
		Section80D:      "30000",
		OtherDeductions: "12000.50",
	}

	first := engine.Evaluate(raw)
	second := engine.Evaluate(raw)

	assert.Equal(t, first, second)
}

func TestEngine_Evaluate_Concurrent(t *testing.T) {
	engine := NewEngine()
	raw := domain.RawTaxInputs{GrossIncome: "1200000", Section80C: "150000"}
	want := engine.Evaluate(raw)

	var wg sync.WaitGroup
	results := make([]Evaluation, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Evaluate(raw)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.append("DEBUG: " + format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.append("INFO: " + format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.append("WARN: " + format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.append("ERROR: " + format)
}

func (tl *TestLogger) append(msg string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, msg)
}
