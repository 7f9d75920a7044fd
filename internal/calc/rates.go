package calc

import (
	"fmt"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
)

// validator is implemented by every input record.
type validator interface {
	Validate() error
}

// run validates in, opens a ledger and lets write fill it. write returns the
// total tax.
func (c *Context) run(op string, in validator, write func(*breakdown.Writer) money.Money) (*breakdown.Ledger, error) {
	if err := in.Validate(); err != nil {
		return nil, c.fail(op, fmt.Errorf("%s: %w", op, err))
	}
	l, w, err := c.begin(op, c.snapshot())
	if err != nil {
		return nil, err
	}
	l.TotalTax = write(w)
	return c.finish(op, l, w)
}

// baseTimesRate is the single-pass layout shared by PPh 22, 23 and 4(2).
func baseTimesRate(title, baseLabel string, base, rate money.Money) func(*breakdown.Writer) money.Money {
	return func(w *breakdown.Writer) money.Money {
		tax := base.Mul(rate)
		w.Section(title)
		w.Currency(baseLabel, base, "")
		w.Percent("Tarif", rate, "")
		w.Total(title, tax)
		return tax
	}
}

// PPh22 computes withholding on goods: DPP times rate.
func (c *Context) PPh22(in *domain.PPh22Input) (*breakdown.Ledger, error) {
	const op = "pph22"
	if in == nil {
		return nil, c.fail(op, nilInput(op))
	}
	return c.run(op, in, baseTimesRate("PPh 22", "DPP", in.DPP, in.Rate))
}

// PPh23 computes withholding on services: gross times rate.
func (c *Context) PPh23(in *domain.PPh23Input) (*breakdown.Ledger, error) {
	const op = "pph23"
	if in == nil {
		return nil, c.fail(op, nilInput(op))
	}
	return c.run(op, in, baseTimesRate("PPh 23", "Penghasilan bruto", in.Bruto, in.Rate))
}

// PPh4_2 computes final income tax under Pasal 4(2).
func (c *Context) PPh4_2(in *domain.PPh4_2Input) (*breakdown.Ledger, error) {
	const op = "pph4-2"
	if in == nil {
		return nil, c.fail(op, nilInput(op))
	}
	return c.run(op, in, baseTimesRate("PPh Final Pasal 4(2)", "Penghasilan bruto", in.Bruto, in.Rate))
}

// PPN computes value-added tax. In inclusive mode the stated amount already
// contains the tax and DPP is backed out of it.
func (c *Context) PPN(in *domain.PPNInput) (*breakdown.Ledger, error) {
	const op = "ppn"
	if in == nil {
		return nil, c.fail(op, nilInput(op))
	}
	return c.run(op, in, func(w *breakdown.Writer) money.Money {
		dpp, ppn := in.DPP, in.DPP.Mul(in.Rate)
		if in.Mode == domain.PPNInclusive {
			dpp = in.DPP.Percent(money.Scale, money.Scale+in.Rate.Units())
			ppn = in.DPP.Sub(dpp)
		}
		w.Section("PPN")
		w.Currency("DPP", dpp, "")
		w.Percent("Tarif PPN", in.Rate, "")
		w.Total("PPN", ppn)
		return ppn
	})
}

// PPnBM computes PPN and the luxury-goods tax on the same DPP.
func (c *Context) PPnBM(in *domain.PPnBMInput) (*breakdown.Ledger, error) {
	const op = "ppnbm"
	if in == nil {
		return nil, c.fail(op, nilInput(op))
	}
	return c.run(op, in, func(w *breakdown.Writer) money.Money {
		ppn := in.DPP.Mul(in.PPNRate)
		ppnbm := in.DPP.Mul(in.PPnBMRate)
		total := ppn.Add(ppnbm)
		w.Section("PPN dan PPnBM")
		w.Currency("DPP", in.DPP, "")
		w.Percent("Tarif PPN", in.PPNRate, "")
		w.Currency("PPN", ppn, "")
		w.Percent("Tarif PPnBM", in.PPnBMRate, "")
		w.Currency("PPnBM", ppnbm, "")
		w.Total("Total PPN + PPnBM", total)
		return total
	})
}
