package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/kadcom/pphc/internal/breakdown"
)

const rule = "========================================"

// WriteText prints the breakdown as a fixed-width table followed by the
// "Total Tax: X IDR" line.
func WriteText(w io.Writer, doc Document) error {
	if err := doc.validate(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n  %s\n%s\n\n", rule, doc.title(), rule)

	for _, row := range doc.Ledger.Rows {
		switch row.Variant {
		case breakdown.VariantSection:
			fmt.Fprintf(&b, "\n>>> %s\n", row.Label)
			continue
		case breakdown.VariantSpacer:
			b.WriteString("\n")
			continue
		}

		fmt.Fprintf(&b, "  %-40s ", row.Label)
		if v := row.Display(); v != "" {
			fmt.Fprintf(&b, "%15s", v)
		}
		if row.Note != "" {
			fmt.Fprintf(&b, "  (%s)", row.Note)
		}
		b.WriteString("\n")
		if row.Variant == breakdown.VariantTotal {
			b.WriteString(rule + "\n")
		}
	}

	fmt.Fprintf(&b, "\nTotal Tax: %s IDR\n\n", doc.Ledger.TotalTax.Formatted())
	_, err := io.WriteString(w, b.String())
	return err
}

// Text returns the table as bytes.
func Text(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteText(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
