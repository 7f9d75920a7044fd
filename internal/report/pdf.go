package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/kadcom/pphc/internal/breakdown"
)

const (
	labelWidth = 95.0
	valueWidth = 45.0
	noteWidth  = 50.0
	lineHeight = 6.0
)

// PDF renders the ledger on A4 pages with the core Arial font.
func PDF(doc Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, tr(doc.title()))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 9)
	if !doc.Generated.IsZero() {
		pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", doc.Generated.Format(time.RFC3339)))
		pdf.Ln(8)
	}

	for _, r := range doc.Ledger.Rows {
		switch r.Variant {
		case breakdown.VariantSpacer:
			pdf.Ln(lineHeight / 2)
			continue
		case breakdown.VariantSection:
			pdf.Ln(2)
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, lineHeight+1, tr(r.Label), "B", 1, "L", false, 0, "")
			continue
		}

		style, border := "", ""
		if r.Emphasized() {
			style = "B"
		}
		if r.Variant == breakdown.VariantTotal {
			border = "T"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(labelWidth, lineHeight, tr(r.Label), border, 0, "L", false, 0, "")
		pdf.CellFormat(valueWidth, lineHeight, r.Display(), border, 0, "R", false, 0, "")
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(noteWidth, lineHeight, tr(r.Note), border, 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(labelWidth, lineHeight+2, "Total Tax", "1", 0, "L", false, 0, "")
	pdf.CellFormat(valueWidth, lineHeight+2, doc.Ledger.TotalTax.FormatIDR(), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
