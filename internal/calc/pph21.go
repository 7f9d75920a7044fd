package calc

import (
	"fmt"
	"strings"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
	"github.com/kadcom/pphc/internal/taxtable"
)

const (
	opPPh21 = "pph21"

	// withheldMonths is how many months are withheld with TER before the
	// final month settles against the annual tax.
	withheldMonths = 11

	labelBiayaJabatan = "Biaya jabatan (5%, maks 6 jt)"
	labelPKP          = "PKP (dibulatkan ribuan)"
)

var biayaJabatanCap = money.Rupiah(6_000_000)

// annual holds the yearly figures shared by both schemes.
type annual struct {
	months       int
	bruto        money.Money
	pension      money.Money
	biayaJabatan money.Money
	netto        money.Money
	ptkp         money.Money
	pkp          money.Money
	tax          money.Money
}

// PPh21 computes PPh 21/26. Permanent employees get the full annual
// computation under the chosen scheme; other subject types get the flat
// provisional rate.
func (c *Context) PPh21(in *domain.PPh21Input) (*breakdown.Ledger, error) {
	if in == nil {
		return nil, c.fail(opPPh21, nilInput(opPPh21))
	}
	if err := in.Validate(); err != nil {
		return nil, c.fail(opPPh21, fmt.Errorf("%s: %w", opPPh21, err))
	}

	s := c.snapshot()
	var a annual
	if in.SubjectType == domain.SubjectPegawaiTetap {
		var err error
		if a, err = computeAnnual(s.tables, in); err != nil {
			return nil, c.fail(opPPh21, fmt.Errorf("%s: %w", opPPh21, err))
		}
	}

	l, w, err := c.begin(opPPh21, s)
	if err != nil {
		return nil, err
	}

	if in.SubjectType == domain.SubjectPegawaiTetap {
		if in.Scheme == domain.SchemeTER {
			l.Withholding = writeTER(w, s.tables, in, a)
		} else {
			writeLama(w, in, a)
		}
		l.TotalTax = a.tax
	} else {
		l.TotalTax = writeFlat(w, in)
	}
	return c.finish(opPPh21, l, w)
}

func clampMonths(m int) int {
	switch {
	case m < 1:
		return 1
	case m > 12:
		return 12
	default:
		return m
	}
}

// computeAnnual fails when the annual gross or pension does not fit in a
// Money.
func computeAnnual(t *taxtable.Set, in *domain.PPh21Input) (annual, error) {
	a := annual{months: clampMonths(in.MonthsPaid)}

	var ok bool
	if a.bruto, ok = in.BrutoMonthly.CheckedMulInt(int64(a.months)); !ok {
		return annual{}, fmt.Errorf("%w: annual gross income out of range", domain.ErrInvalidInput)
	}
	for _, b := range in.Bonuses {
		if a.bruto, ok = a.bruto.CheckedAdd(b.Amount); !ok {
			return annual{}, fmt.Errorf("%w: annual gross income out of range", domain.ErrInvalidInput)
		}
	}
	if a.pension, ok = in.PensionContribution.CheckedMulInt(int64(a.months)); !ok {
		return annual{}, fmt.Errorf("%w: annual pension contribution out of range", domain.ErrInvalidInput)
	}
	a.biayaJabatan = a.bruto.Percent(5, 100).Min(biayaJabatanCap)
	a.netto = a.bruto.Sub(a.biayaJabatan).Sub(a.pension).Sub(in.ZakatOrDonation)
	a.ptkp = t.PTKP(in.PTKPStatus)
	a.pkp = a.netto.Sub(a.ptkp).Floor().RoundDownThousand()
	a.tax = t.Progressive(a.pkp)
	return a, nil
}

func writeLama(w *breakdown.Writer, in *domain.PPh21Input, a annual) {
	w.Section("Penghasilan Bruto")
	w.Currency("Gaji per bulan", in.BrutoMonthly, "")
	w.Currency("Gaji setahun", in.BrutoMonthly.MulInt(int64(a.months)), fmt.Sprintf("%d bulan", a.months))
	for _, b := range in.Bonuses {
		w.Currency(b.Name, b.Amount, "")
	}
	w.Subtotal("Total bruto", a.bruto)

	w.Section("Pengurang")
	w.Currency(labelBiayaJabatan, a.biayaJabatan, "")
	w.Currency("Iuran pensiun", a.pension, "")
	if in.ZakatOrDonation.IsPositive() {
		w.Currency("Zakat/sumbangan", in.ZakatOrDonation, "")
	}
	w.Subtotal("Netto setahun", a.netto)

	w.Section("PKP dan Pajak")
	w.Currency("PTKP", a.ptkp, "")
	w.Currency(labelPKP, a.pkp, "")
	w.Total("PPh 21 setahun", a.tax)
}

// terSchedule spreads the base salary over the paid months, adds each bonus
// to its month, and withholds TER for the first eleven of them. Bonuses
// dated outside the paid months count toward the annual gross only.
func terSchedule(t *taxtable.Set, in *domain.PPh21Input, a annual) *breakdown.Withholding {
	wh := &breakdown.Withholding{Annual: a.tax}
	for i := 0; i < a.months; i++ {
		wh.Income[i] = in.BrutoMonthly
	}
	for _, b := range in.Bonuses {
		if m := b.Month - 1; m >= 0 && m < a.months {
			wh.Income[m] = wh.Income[m].Add(b.Amount)
		}
	}
	for i := 0; i < withheldMonths && i < a.months; i++ {
		wh.Rates[i] = t.MonthlyRate(in.TERCategory, wh.Income[i])
		wh.Monthly[i] = wh.Income[i].Mul(wh.Rates[i])
		wh.Paid = wh.Paid.Add(wh.Monthly[i])
	}
	wh.Adjustment = a.tax.Sub(wh.Paid)
	return wh
}

func writeTER(w *breakdown.Writer, t *taxtable.Set, in *domain.PPh21Input, a annual) *breakdown.Withholding {
	wh := terSchedule(t, in, a)

	w.Section("Pemotongan TER (Bulan 1-11)")
	regular, regularTotal := 0, money.Zero
	for i := 0; i < withheldMonths && i < a.months; i++ {
		names := bonusNames(in.Bonuses, i+1)
		if len(names) == 0 {
			regular++
			regularTotal = regularTotal.Add(wh.Monthly[i])
			continue
		}
		w.Currency(fmt.Sprintf("Bulan %d (%s)", i+1, strings.Join(names, ", ")), wh.Income[i], "")
		w.Percent("  Tarif TER", wh.Rates[i], "")
		w.Currency("  PPh 21 TER", wh.Monthly[i], "")
	}
	if regular > 0 {
		rate := t.MonthlyRate(in.TERCategory, in.BrutoMonthly)
		w.Currency(fmt.Sprintf("%d bulan reguler", regular), in.BrutoMonthly, "per bulan")
		w.Percent("  Tarif TER", rate, "")
		w.Currency("  PPh 21 TER per bulan", in.BrutoMonthly.Mul(rate), "")
		w.Currency("  Total PPh 21 TER", regularTotal, "")
	}
	w.Currency("Total TER bulan 1-11", wh.Paid, "")

	w.Section("Perhitungan Tahunan (Pasal 17)")
	w.Currency("Bruto setahun", a.bruto, "")
	w.Currency(labelBiayaJabatan, a.biayaJabatan, "")
	w.Currency("Netto setahun", a.netto, "")
	w.Currency("PTKP", a.ptkp, "")
	w.Currency(labelPKP, a.pkp, "")
	w.Currency("PPh 21 setahun (progresif)", a.tax, "")

	w.Section("Penyesuaian Bulan 12")
	w.Currency("PPh 21 setahun", a.tax, "")
	w.Currency("TER telah dipotong (bln 1-11)", wh.Paid, "")
	w.Currency("Kurang/(lebih) bayar bulan 12", wh.Adjustment, "")
	return wh
}

func bonusNames(bonuses []domain.Bonus, month int) []string {
	var names []string
	for _, b := range bonuses {
		if b.Month == month {
			names = append(names, b.Name)
		}
	}
	return names
}

// flatRate is the provisional rate applied to non-permanent subject types.
var flatRate = money.FromUnits(500)

func writeFlat(w *breakdown.Writer, in *domain.PPh21Input) money.Money {
	tax := in.BrutoMonthly.Percent(5, 100)
	w.Section(domain.SubjectTitles[in.SubjectType])
	w.Currency("Penghasilan bruto", in.BrutoMonthly, "")
	w.Percent("Tarif", flatRate, "5%")
	w.Total("PPh 21", tax)
	return tax
}
