// Package taxtable holds the statutory tables used by the PPh 21 engine:
// PTKP allowances, Pasal 17 progressive layers and the TER effective-rate
// tables, together with their lookups.
package taxtable

import (
	"fmt"

	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
)

// Layer is one Pasal 17 band. Width is the size of the band, not its upper
// bound; bands are consumed in order.
type Layer struct {
	Width money.Money `json:"width"`
	Rate  money.Money `json:"rate"`
}

// Bracket is one TER row. Ceiling is inclusive.
type Bracket struct {
	Ceiling money.Money `json:"ceiling"`
	Rate    money.Money `json:"rate"`
}

// LayerUse records how much of a Pasal 17 layer a PKP consumed.
type LayerUse struct {
	Layer   Layer       `json:"layer"`
	Taxable money.Money `json:"taxable"`
	Tax     money.Money `json:"tax"`
}

// Set is a complete, self-consistent group of tables. A Set is read-only
// once built and is safe for concurrent use.
type Set struct {
	Name       string
	Allowances map[domain.PTKPStatus]money.Money
	Layers     []Layer
	Monthly    map[domain.TERCategory][]Bracket
	Daily      map[domain.TERCategory][]Bracket
}

var defaultSet = statutory()

// Default returns the statutory tables. Callers must not modify it.
func Default() *Set {
	return defaultSet
}

// PTKP returns the annual allowance for status. Unknown statuses fall back
// to TK/0.
func (s *Set) PTKP(status domain.PTKPStatus) money.Money {
	if v, ok := s.Allowances[status]; ok {
		return v
	}
	return s.Allowances[domain.PTKPTK0]
}

// Progressive applies the Pasal 17 layers to pkp. Non-positive input
// yields zero.
func (s *Set) Progressive(pkp money.Money) money.Money {
	tax := money.Zero
	for _, u := range s.ProgressiveLayers(pkp) {
		tax = tax.Add(u.Tax)
	}
	return tax
}

// ProgressiveLayers returns the per-layer consumption of pkp, stopping at
// the first layer left untouched. The last layer is open-ended whatever its
// stated width.
func (s *Set) ProgressiveLayers(pkp money.Money) []LayerUse {
	var uses []LayerUse
	remaining := pkp
	for i, l := range s.Layers {
		if !remaining.IsPositive() {
			break
		}
		taxable := remaining
		if i < len(s.Layers)-1 {
			taxable = remaining.Min(l.Width)
		}
		uses = append(uses, LayerUse{Layer: l, Taxable: taxable, Tax: taxable.Mul(l.Rate)})
		remaining = remaining.Sub(taxable)
	}
	return uses
}

// MonthlyRate returns the TER bulanan rate for a month's gross income.
// Unknown categories use category A.
func (s *Set) MonthlyRate(cat domain.TERCategory, income money.Money) money.Money {
	return lookup(pick(s.Monthly, cat), income)
}

// DailyRate returns the TER harian rate for a day's gross income.
func (s *Set) DailyRate(cat domain.TERCategory, income money.Money) money.Money {
	return lookup(pick(s.Daily, cat), income)
}

// MonthlyTable exposes the TER bulanan rows for cat.
func (s *Set) MonthlyTable(cat domain.TERCategory) []Bracket {
	return pick(s.Monthly, cat)
}

// DailyTable exposes the TER harian rows for cat.
func (s *Set) DailyTable(cat domain.TERCategory) []Bracket {
	return pick(s.Daily, cat)
}

func pick(tables map[domain.TERCategory][]Bracket, cat domain.TERCategory) []Bracket {
	if t, ok := tables[cat]; ok {
		return t
	}
	return tables[domain.TERCategoryA]
}

// lookup returns the rate of the first bracket whose ceiling is at least
// income, or the last rate when income exceeds every ceiling.
func lookup(table []Bracket, income money.Money) money.Money {
	if len(table) == 0 {
		return money.Zero
	}
	for _, b := range table {
		if income.Cmp(b.Ceiling) <= 0 {
			return b.Rate
		}
	}
	return table[len(table)-1].Rate
}

// Validate checks that the set is complete: every PTKP status, at least one
// progressive layer, and non-empty TER tables for every category with
// strictly increasing ceilings.
func (s *Set) Validate() error {
	for _, st := range domain.PTKPStatuses {
		v, ok := s.Allowances[st]
		if !ok {
			return fmt.Errorf("%w: missing PTKP for %s", domain.ErrInvalidTable, st)
		}
		if v.IsNegative() {
			return fmt.Errorf("%w: negative PTKP for %s", domain.ErrInvalidTable, st)
		}
	}
	if len(s.Allowances) != len(domain.PTKPStatuses) {
		return fmt.Errorf("%w: unexpected PTKP statuses", domain.ErrInvalidTable)
	}

	if len(s.Layers) == 0 {
		return fmt.Errorf("%w: no progressive layers", domain.ErrInvalidTable)
	}
	for i, l := range s.Layers {
		if !l.Width.IsPositive() || l.Rate.IsNegative() {
			return fmt.Errorf("%w: progressive layer %d", domain.ErrInvalidTable, i+1)
		}
	}

	for _, cat := range domain.TERCategories {
		if err := validateBrackets("monthly "+string(cat), s.Monthly[cat]); err != nil {
			return err
		}
		if err := validateBrackets("daily "+string(cat), s.Daily[cat]); err != nil {
			return err
		}
	}
	return nil
}

func validateBrackets(name string, table []Bracket) error {
	if len(table) == 0 {
		return fmt.Errorf("%w: empty TER table %s", domain.ErrInvalidTable, name)
	}
	for i, b := range table {
		if b.Rate.IsNegative() {
			return fmt.Errorf("%w: TER %s row %d has a negative rate", domain.ErrInvalidTable, name, i+1)
		}
		if i > 0 && b.Ceiling.Cmp(table[i-1].Ceiling) <= 0 {
			return fmt.Errorf("%w: TER %s ceilings not increasing at row %d", domain.ErrInvalidTable, name, i+1)
		}
	}
	return nil
}

// PTKP looks up status in the statutory tables.
func PTKP(status domain.PTKPStatus) money.Money { return defaultSet.PTKP(status) }

// Progressive applies the statutory Pasal 17 layers.
func Progressive(pkp money.Money) money.Money { return defaultSet.Progressive(pkp) }

// ProgressiveLayers is Set.ProgressiveLayers on the statutory tables.
func ProgressiveLayers(pkp money.Money) []LayerUse { return defaultSet.ProgressiveLayers(pkp) }

// MonthlyRate is Set.MonthlyRate on the statutory tables.
func MonthlyRate(cat domain.TERCategory, income money.Money) money.Money {
	return defaultSet.MonthlyRate(cat, income)
}

// DailyRate is Set.DailyRate on the statutory tables.
func DailyRate(cat domain.TERCategory, income money.Money) money.Money {
	return defaultSet.DailyRate(cat, income)
}
