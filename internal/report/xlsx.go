package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/money"
)

const (
	breakdownSheet   = "breakdown"
	withholdingSheet = "withholding"

	numFmtThousands = 4  // #,##0.00
	numFmtPercent   = 10 // 0.00%
)

type xlsxStyles struct {
	bold, currency, boldCurrency, percent int
}

// XLSX renders the ledger as a workbook. PPh 21 TER results get a second
// sheet with the month-by-month withholding.
func XLSX(doc Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", breakdownSheet); err != nil {
		return nil, err
	}
	st, err := newXLSXStyles(f)
	if err != nil {
		return nil, fmt.Errorf("creating styles: %w", err)
	}

	_ = f.SetCellValue(breakdownSheet, "A1", doc.title())
	_ = f.SetCellStyle(breakdownSheet, "A1", "A1", st.bold)
	if !doc.Generated.IsZero() {
		_ = f.SetCellValue(breakdownSheet, "A2", "Generated")
		_ = f.SetCellValue(breakdownSheet, "B2", doc.Generated.Format(time.RFC3339))
	}

	_ = f.SetCellValue(breakdownSheet, "A4", "Label")
	_ = f.SetCellValue(breakdownSheet, "B4", "Value")
	_ = f.SetCellValue(breakdownSheet, "C4", "Note")
	_ = f.SetCellStyle(breakdownSheet, "A4", "C4", st.bold)

	row := 5
	for _, r := range doc.Ledger.Rows {
		a, b, c := fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), fmt.Sprintf("C%d", row)
		_ = f.SetCellValue(breakdownSheet, a, r.Label)
		switch r.ValueType {
		case breakdown.ValueCurrency:
			_ = f.SetCellValue(breakdownSheet, b, number(r.Value))
			style := st.currency
			if r.Emphasized() {
				style = st.boldCurrency
			}
			_ = f.SetCellStyle(breakdownSheet, b, b, style)
		case breakdown.ValuePercent:
			_ = f.SetCellValue(breakdownSheet, b, number(r.Value))
			_ = f.SetCellStyle(breakdownSheet, b, b, st.percent)
		}
		if r.Note != "" {
			_ = f.SetCellValue(breakdownSheet, c, r.Note)
		}
		if r.Emphasized() {
			_ = f.SetCellStyle(breakdownSheet, a, a, st.bold)
		}
		row++
	}

	row++
	total := fmt.Sprintf("B%d", row)
	_ = f.SetCellValue(breakdownSheet, fmt.Sprintf("A%d", row), "Total Tax")
	_ = f.SetCellStyle(breakdownSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), st.bold)
	_ = f.SetCellValue(breakdownSheet, total, number(doc.Ledger.TotalTax))
	_ = f.SetCellStyle(breakdownSheet, total, total, st.boldCurrency)
	_ = f.SetColWidth(breakdownSheet, "A", "A", 44)
	_ = f.SetColWidth(breakdownSheet, "B", "B", 20)
	_ = f.SetColWidth(breakdownSheet, "C", "C", 30)

	if w := doc.Ledger.Withholding; w != nil {
		if err := writeWithholding(f, st, w); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeWithholding(f *excelize.File, st xlsxStyles, w *breakdown.Withholding) error {
	if _, err := f.NewSheet(withholdingSheet); err != nil {
		return err
	}
	headers := []string{"Month", "Income", "TER Rate", "Withheld"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		_ = f.SetCellValue(withholdingSheet, cell, h)
		_ = f.SetCellStyle(withholdingSheet, cell, cell, st.bold)
	}
	for m := 0; m < 12; m++ {
		row := m + 2
		_ = f.SetCellValue(withholdingSheet, fmt.Sprintf("A%d", row), m+1)
		_ = f.SetCellValue(withholdingSheet, fmt.Sprintf("B%d", row), number(w.Income[m]))
		_ = f.SetCellValue(withholdingSheet, fmt.Sprintf("C%d", row), number(w.Rates[m]))
		_ = f.SetCellValue(withholdingSheet, fmt.Sprintf("D%d", row), number(w.Monthly[m]))
	}
	_ = f.SetCellStyle(withholdingSheet, "B2", "B13", st.currency)
	_ = f.SetCellStyle(withholdingSheet, "C2", "C13", st.percent)
	_ = f.SetCellStyle(withholdingSheet, "D2", "D13", st.currency)

	summary := []struct {
		label string
		value money.Money
	}{
		{"Paid Jan-Nov", w.Paid},
		{"Annual PPh 21", w.Annual},
		{"December adjustment", w.Adjustment},
	}
	for i, s := range summary {
		row := 15 + i
		_ = f.SetCellValue(withholdingSheet, fmt.Sprintf("A%d", row), s.label)
		_ = f.SetCellValue(withholdingSheet, fmt.Sprintf("D%d", row), number(s.value))
		_ = f.SetCellStyle(withholdingSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), st.boldCurrency)
	}
	_ = f.SetColWidth(withholdingSheet, "A", "A", 22)
	_ = f.SetColWidth(withholdingSheet, "B", "D", 18)
	return nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var st xlsxStyles
	var err error
	bold := &excelize.Font{Bold: true}
	if st.bold, err = f.NewStyle(&excelize.Style{Font: bold}); err != nil {
		return st, err
	}
	if st.currency, err = f.NewStyle(&excelize.Style{NumFmt: numFmtThousands}); err != nil {
		return st, err
	}
	if st.boldCurrency, err = f.NewStyle(&excelize.Style{NumFmt: numFmtThousands, Font: bold}); err != nil {
		return st, err
	}
	if st.percent, err = f.NewStyle(&excelize.Style{NumFmt: numFmtPercent}); err != nil {
		return st, err
	}
	return st, nil
}

// number converts to a float for spreadsheet cells; the display string stays
// exact in the PDF and text renderers.
func number(m money.Money) float64 {
	return m.Decimal().InexactFloat64()
}
