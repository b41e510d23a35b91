package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/itrgo/internal/compare"
)

// CSVFormatter writes one row per breakdown line with both regimes side by side
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *compare.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Item", "OldRegime", "NewRegime"}); err != nil {
		return nil, err
	}
	for _, row := range report.Rows() {
		if err := w.Write([]string{row.Label, row.Old.StringFixed(2), row.New.StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{"Savings", report.Comparison.Savings.StringFixed(2), ""}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"Recommended", string(report.Comparison.Cheaper), ""}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
