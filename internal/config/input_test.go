package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_NumbersAndStrings(t *testing.T) {
	path := writeFile(t, "inputs.yaml", `
description: FY 2024-25 estimate
gross_income: 1200000
section_80c: "1,50,000"
section_80d: 25000.50
other_deductions: ""
`)

	input, err := NewInputParser().LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "FY 2024-25 estimate", input.Description)
	assert.Equal(t, "1200000", input.GrossIncome)
	assert.Equal(t, "1,50,000", input.Section80C)
	assert.Equal(t, "25000.50", input.Section80D)
	assert.Equal(t, "", input.OtherDeductions)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeFile(t, "inputs.json", `{"gross_income": "900000", "section_80c": 100000}`)

	input, err := NewInputParser().LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "900000", input.GrossIncome)
	assert.Equal(t, "100000", input.Section80C)
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"unknown key", "gross_incme: 1000\n", "field gross_incme not found"},
		{"no amounts", "description: nothing here\n", "no tax amounts found"},
		{"bad yaml", "gross_income: [1, 2\n", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "inputs.yaml", tt.content)
			_, err := NewInputParser().LoadFromFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOverrides_Apply(t *testing.T) {
	gross := "1500000"
	empty := ""
	path := writeFile(t, "inputs.yaml", "gross_income: 1000000\nsection_80c: 50000\n")
	input, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	raw := Overrides{GrossIncome: &gross, Section80C: &empty}.Apply(input.RawTaxInputs)

	assert.Equal(t, "1500000", raw.GrossIncome)
	assert.Equal(t, "", raw.Section80C, "explicit empty override clears the file value")
	assert.Equal(t, "", raw.Section80D)
}
