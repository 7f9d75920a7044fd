// Package csvexport writes a breakdown ledger as CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/kadcom/pphc/internal/breakdown"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Label",
	"Value",
	"Display",
	"Type",
	"Note",
	"Variant",
}

// Writer wraps csv.Writer for exporting breakdown rows as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts breakdown rows to CSV records and writes them.
func (w *Writer) WriteRows(rows []breakdown.Row) error {
	for i := range rows {
		if err := w.csv.Write(rowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteLedger writes the BOM, header, every row and a closing total record.
func (w *Writer) WriteLedger(out io.Writer, l *breakdown.Ledger) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRows(l.Rows); err != nil {
		return err
	}
	total := []string{"Total Tax", l.TotalTax.String(), l.TotalTax.Formatted(), string(breakdown.ValueCurrency), "", string(breakdown.VariantTotal)}
	if err := w.csv.Write(total); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Write renders l to out in one call.
func Write(out io.Writer, l *breakdown.Ledger) error {
	return NewWriter(out).WriteLedger(out, l)
}

// rowToRecord converts a single row. Text rows leave Value empty; spacer
// rows are all blanks apart from the variant.
func rowToRecord(r *breakdown.Row) []string {
	record := make([]string, len(columns))
	record[0] = r.Label
	if r.ValueType != breakdown.ValueText {
		record[1] = r.Value.String()
	}
	record[2] = r.Display()
	record[3] = string(r.ValueType)
	record[4] = r.Note
	record[5] = string(r.Variant)
	return record
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "breakdown"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), ext)
}
