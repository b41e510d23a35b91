package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/itrgo/internal/compare"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *compare.Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*compare.Report
		Rows        []compare.ReportRow
		Assumptions []string
	}{report, report.Rows(), DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
