package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxSummarySheet = "Comparison"
	xlsxNotesSheet   = "Notes"
)

// XLSXFormatter writes a workbook with the side-by-side table and the notes
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(report *compare.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSummarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	numFmt := "#,##0.00"
	amount, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := f.SetSheetRow(xlsxSummarySheet, "A1", &[]any{"Item", "Old Regime", "New Regime"}); err != nil {
		return nil, err
	}
	rows := report.Rows()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		oldVal, _ := row.Old.Float64()
		newVal, _ := row.New.Float64()
		if err := f.SetSheetRow(xlsxSummarySheet, cell, &[]any{row.Label, oldVal, newVal}); err != nil {
			return nil, err
		}
	}

	last := len(rows) + 1
	savingsRow := last + 2
	savings, _ := report.Comparison.Savings.Float64()
	if err := f.SetSheetRow(xlsxSummarySheet, fmt.Sprintf("A%d", savingsRow), &[]any{"Savings (old - new)", savings}); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(xlsxSummarySheet, fmt.Sprintf("A%d", savingsRow+1), &[]any{"Recommended", report.Comparison.Cheaper.String()}); err != nil {
		return nil, err
	}

	if err := f.SetCellStyle(xlsxSummarySheet, "A1", "C1", bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(xlsxSummarySheet, fmt.Sprintf("A%d", last), fmt.Sprintf("A%d", last), bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(xlsxSummarySheet, "B2", fmt.Sprintf("C%d", savingsRow), amount); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(xlsxSummarySheet, "A", "A", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(xlsxSummarySheet, "B", "C", 16); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(xlsxNotesSheet); err != nil {
		return nil, fmt.Errorf("create notes sheet: %w", err)
	}
	notes := append(append([]string{}, report.Warnings...), report.Recommendations...)
	notes = append(notes, DefaultAssumptions...)
	for i, n := range notes {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue(xlsxNotesSheet, cell, n); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
