package output

import (
	"encoding/json"

	"github.com/rgehrsitz/itrgo/internal/compare"
)

// JSONFormatter emits the report as JSON; amounts are exact decimal strings
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *compare.Report) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
