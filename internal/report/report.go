// Package report renders a breakdown ledger for people: an XLSX workbook, a
// PDF page and the plain-text table the CLI prints.
package report

import (
	"errors"
	"time"

	"github.com/kadcom/pphc/internal/breakdown"
)

var errNoLedger = errors.New("report: nil ledger")

// Document is what every renderer needs: a title and the ledger.
type Document struct {
	Title     string
	Generated time.Time
	Ledger    *breakdown.Ledger
}

func (d Document) validate() error {
	if d.Ledger == nil {
		return errNoLedger
	}
	return nil
}

func (d Document) title() string {
	if d.Title == "" {
		return "Tax Calculation Result"
	}
	return d.Title
}
