// Package breakdown is the itemized computation trail produced by every tax
// engine: an ordered list of labelled rows plus the resulting total.
package breakdown

import "github.com/kadcom/pphc/internal/money"

// ValueType tells a renderer how to print Row.Value.
type ValueType string

const (
	ValueCurrency ValueType = "currency"
	ValuePercent  ValueType = "percent"
	ValueText     ValueType = "text"
)

// Variant is the presentational role of a row. Order is the only structure,
// so a Section row simply precedes the rows it heads.
type Variant string

const (
	VariantNormal   Variant = "normal"
	VariantSection  Variant = "section"
	VariantSubtotal Variant = "subtotal"
	VariantTotal    Variant = "total"
	VariantGroup    Variant = "group"
	VariantSpacer   Variant = "spacer"
)

// Row is one line of a breakdown.
type Row struct {
	Label     string      `json:"label"`
	Value     money.Money `json:"value"`
	ValueType ValueType   `json:"value_type"`
	Note      string      `json:"note,omitempty"`
	Variant   Variant     `json:"variant"`
}

// Display returns the value as it should appear in a table cell: grouped
// currency or a percentage. Text rows carry no value.
func (r Row) Display() string {
	switch r.ValueType {
	case ValueCurrency:
		return r.Value.Formatted()
	case ValuePercent:
		return r.Value.PercentString()
	default:
		return ""
	}
}

// Emphasized reports whether renderers should print the row in bold.
func (r Row) Emphasized() bool {
	switch r.Variant {
	case VariantSection, VariantSubtotal, VariantTotal, VariantGroup:
		return true
	}
	return false
}

// Withholding is the TER reconciliation for a permanent employee: what was
// withheld month by month and what the final month must settle.
type Withholding struct {
	Income     [12]money.Money `json:"income"`
	Rates      [12]money.Money `json:"rates"`
	Monthly    [12]money.Money `json:"monthly"`
	Paid       money.Money     `json:"paid"`
	Annual     money.Money     `json:"annual"`
	Adjustment money.Money     `json:"adjustment"`
}
