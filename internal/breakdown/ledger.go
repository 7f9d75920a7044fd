package breakdown

import (
	"fmt"

	"github.com/kadcom/pphc/internal/money"
)

// Ledger is the result of one calculation. It is built by a single goroutine
// and handed to the caller, who owns it.
type Ledger struct {
	Rows        []Row        `json:"rows"`
	TotalTax    money.Money  `json:"total_tax"`
	Withholding *Withholding `json:"withholding,omitempty"`

	alloc  Allocator
	policy TextPolicy
}

// New reserves InitialCapacity rows from alloc. A nil alloc uses the heap
// and an empty policy means Truncate.
func New(alloc Allocator, policy TextPolicy) (*Ledger, error) {
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	if policy == "" {
		policy = Truncate
	}
	rows, err := alloc.Alloc(InitialCapacity)
	if err != nil {
		return nil, err
	}
	return &Ledger{Rows: rows, alloc: alloc, policy: policy}, nil
}

// Len returns the number of rows.
func (l *Ledger) Len() int { return len(l.Rows) }

// Add appends r after applying the text policy, doubling the row storage
// when it is full.
func (l *Ledger) Add(r Row) error {
	var err error
	if r.Label, err = l.policy.apply("label", r.Label, MaxLabelBytes); err != nil {
		return err
	}
	if r.Note, err = l.policy.apply("note", r.Note, MaxNoteBytes); err != nil {
		return err
	}
	if len(l.Rows) == cap(l.Rows) {
		size := cap(l.Rows) * 2
		if size == 0 {
			size = InitialCapacity
		}
		grown, err := l.alloc.Grow(l.Rows, size)
		if err != nil {
			return err
		}
		l.Rows = grown
	}
	l.Rows = append(l.Rows, r)
	return nil
}

func (l *Ledger) AddSection(label string) error {
	return l.Add(Row{Label: label, ValueType: ValueText, Variant: VariantSection})
}

func (l *Ledger) AddGroup(label string) error {
	return l.Add(Row{Label: label, ValueType: ValueText, Variant: VariantGroup})
}

func (l *Ledger) AddCurrency(label string, v money.Money, note string) error {
	return l.Add(Row{Label: label, Value: v, ValueType: ValueCurrency, Note: note, Variant: VariantNormal})
}

func (l *Ledger) AddPercent(label string, rate money.Money, note string) error {
	return l.Add(Row{Label: label, Value: rate, ValueType: ValuePercent, Note: note, Variant: VariantNormal})
}

// AddText adds an informational row whose content is carried in the note.
func (l *Ledger) AddText(label, text string) error {
	return l.Add(Row{Label: label, ValueType: ValueText, Note: text, Variant: VariantNormal})
}

func (l *Ledger) AddSubtotal(label string, v money.Money) error {
	return l.Add(Row{Label: label, Value: v, ValueType: ValueCurrency, Variant: VariantSubtotal})
}

func (l *Ledger) AddTotal(label string, v money.Money) error {
	return l.Add(Row{Label: label, Value: v, ValueType: ValueCurrency, Variant: VariantTotal})
}

func (l *Ledger) AddSpacer() error {
	return l.Add(Row{ValueType: ValueText, Variant: VariantSpacer})
}

// Release returns the row storage to the allocator. The ledger is empty
// afterwards; releasing twice is harmless.
func (l *Ledger) Release() {
	if l == nil {
		return
	}
	if l.Rows != nil && l.alloc != nil {
		l.alloc.Release(l.Rows)
	}
	l.Rows = nil
	l.TotalTax = money.Zero
	l.Withholding = nil
}

// Writer collects the first error from a run of Add calls so engines can
// emit rows without checking each one.
type Writer struct {
	l   *Ledger
	err error
}

// NewWriter wraps l.
func NewWriter(l *Ledger) *Writer { return &Writer{l: l} }

func (w *Writer) do(f func() error) {
	if w.err == nil {
		w.err = f()
	}
}

func (w *Writer) Section(label string) { w.do(func() error { return w.l.AddSection(label) }) }
func (w *Writer) Group(label string)   { w.do(func() error { return w.l.AddGroup(label) }) }
func (w *Writer) Spacer()              { w.do(w.l.AddSpacer) }

func (w *Writer) Currency(label string, v money.Money, note string) {
	w.do(func() error { return w.l.AddCurrency(label, v, note) })
}

func (w *Writer) Percent(label string, rate money.Money, note string) {
	w.do(func() error { return w.l.AddPercent(label, rate, note) })
}

func (w *Writer) Text(label, text string) {
	w.do(func() error { return w.l.AddText(label, text) })
}

func (w *Writer) Subtotal(label string, v money.Money) {
	w.do(func() error { return w.l.AddSubtotal(label, v) })
}

func (w *Writer) Total(label string, v money.Money) {
	w.do(func() error { return w.l.AddTotal(label, v) })
}

// Err returns the first failure, if any.
func (w *Writer) Err() error {
	if w.err != nil {
		return fmt.Errorf("writing breakdown row %d: %w", w.l.Len()+1, w.err)
	}
	return nil
}
