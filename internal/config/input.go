package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// TaxInputFile is the on-disk form of one computation's inputs.
// Amounts may be written as numbers or quoted strings.
type TaxInputFile struct {
	Description         string `yaml:"description,omitempty"`
	domain.RawTaxInputs `yaml:",inline"`
}

// InputParser handles parsing of input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads tax inputs from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*TaxInputFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	input, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return input, nil
}

// Parse decodes and validates an input document. Unknown keys are rejected
// so that a misspelt field is not silently read as zero.
func (ip *InputParser) Parse(data []byte) (*TaxInputFile, error) {
	var input TaxInputFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("input file is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInputFile(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// ValidateInputFile checks that at least one amount was supplied. Amount
// contents are not validated here; unparseable values degrade to zero
// during computation and surface as warnings.
func (ip *InputParser) ValidateInputFile(input *TaxInputFile) error {
	raw := input.RawTaxInputs
	if strings.TrimSpace(raw.GrossIncome) == "" &&
		strings.TrimSpace(raw.Section80C) == "" &&
		strings.TrimSpace(raw.Section80D) == "" &&
		strings.TrimSpace(raw.OtherDeductions) == "" {
		return fmt.Errorf("no tax amounts found (expected gross_income, section_80c, section_80d or other_deductions)")
	}
	return nil
}

// Overrides holds command-line values that replace file values when set
type Overrides struct {
	GrossIncome     *string
	Section80C      *string
	Section80D      *string
	OtherDeductions *string
}

// Apply returns raw with every non-nil override substituted
func (o Overrides) Apply(raw domain.RawTaxInputs) domain.RawTaxInputs {
	if o.GrossIncome != nil {
		raw.GrossIncome = *o.GrossIncome
	}
	if o.Section80C != nil {
		raw.Section80C = *o.Section80C
	}
	if o.Section80D != nil {
		raw.Section80D = *o.Section80D
	}
	if o.OtherDeductions != nil {
		raw.OtherDeductions = *o.OtherDeductions
	}
	return raw
}
