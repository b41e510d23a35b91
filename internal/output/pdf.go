package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/money"
	"github.com/shopspring/decimal"
)

const (
	pdfPageWidth    = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders a one-page A4 report
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *compare.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(30, 58, 138)
	pdf.CellFormat(pdfContentWidth, 12, "Income Tax Regime Comparison", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(pdfContentWidth, 6, "Generated: "+report.GeneratedAt.Format("2 January 2006 15:04"), "", 1, "L", false, 0, "")
	if report.Profile != nil {
		line := "Profile: " + report.Profile.Name
		if report.Profile.Age != nil {
			line += fmt.Sprintf(" (age %d, %s)", *report.Profile.Age, report.Profile.Category)
		}
		pdf.CellFormat(pdfContentWidth, 6, pdfText(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	widths := []float64{80, 50, 50}
	drawPDFTableHeader(pdf, []string{"", "Old Regime", "New Regime"}, widths)
	rows := report.Rows()
	for i, row := range rows {
		drawPDFTableRow(pdf, []string{row.Label, pdfMoney(row.Old), pdfMoney(row.New)}, widths, i == len(rows)-1)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(16, 120, 80)
	verdict := "Recommended: " + report.Comparison.Cheaper.String()
	if !report.Comparison.IsTie() {
		verdict += " (saves " + pdfMoney(report.Comparison.AbsSavings()) + ")"
	}
	pdf.CellFormat(pdfContentWidth, 8, verdict, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	for _, r := range report.Recommendations {
		pdf.MultiCell(pdfContentWidth, 5, "- "+pdfText(r), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	for _, a := range DefaultAssumptions {
		pdf.MultiCell(pdfContentWidth, 4.5, pdfText(a), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPDFTableHeader(pdf *fpdf.Fpdf, headers []string, widths []float64) {
	pdf.SetFillColor(30, 58, 138)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, header, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
}

func drawPDFTableRow(pdf *fpdf.Fpdf, cells []string, widths []float64, isBold bool) {
	pdf.SetFillColor(250, 250, 250)
	pdf.SetTextColor(50, 50, 50)
	if isBold {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(235, 238, 245)
	} else {
		pdf.SetFont("Arial", "", 10)
	}
	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 6, cell, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
}

// pdfText swaps the rupee sign for "Rs." since the core fonts are Latin-1 only
func pdfText(s string) string {
	return strings.ReplaceAll(s, money.Symbol, "Rs. ")
}

func pdfMoney(d decimal.Decimal) string {
	return pdfText(FormatCurrency(d))
}
