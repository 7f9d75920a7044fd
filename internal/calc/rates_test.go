package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
)

var ppnRate = money.FromUnits(1100)

func TestPPN_Exclusive(t *testing.T) {
	l, err := New().PPN(&domain.PPNInput{DPP: rp(100_000_000), Rate: ppnRate, Mode: domain.PPNExclusive})
	require.NoError(t, err)

	assert.Equal(t, rp(11_000_000), l.TotalTax)
	require.Len(t, l.Rows, 4)
	assert.Equal(t, "PPN", l.Rows[0].Label)
	assert.Equal(t, rp(100_000_000), l.Rows[1].Value)
	assert.Equal(t, ppnRate, l.Rows[2].Value)
	assert.Equal(t, breakdown.VariantTotal, l.Rows[3].Variant)
}

func TestPPN_Inclusive(t *testing.T) {
	l, err := New().PPN(&domain.PPNInput{DPP: rp(111_000_000), Rate: ppnRate, Mode: domain.PPNInclusive})
	require.NoError(t, err)

	assert.Equal(t, rp(100_000_000), findRow(t, l, "DPP").Value)
	assert.Equal(t, rp(11_000_000), l.TotalTax)
}

func TestPPN_InclusiveLargeAmountDoesNotOverflow(t *testing.T) {
	stated := rp(111_000_000_000_000)
	l, err := New().PPN(&domain.PPNInput{DPP: stated, Rate: ppnRate, Mode: domain.PPNInclusive})
	require.NoError(t, err)

	assert.Equal(t, rp(100_000_000_000_000), findRow(t, l, "DPP").Value)
	assert.Equal(t, rp(11_000_000_000_000), l.TotalTax)
}

func TestPPN_RateOfOneOrMoreRejected(t *testing.T) {
	for _, mode := range []domain.PPNMode{domain.PPNExclusive, domain.PPNInclusive} {
		l, err := New().PPN(&domain.PPNInput{DPP: rp(111_000_000), Rate: money.Max, Mode: mode})
		assert.Nil(t, l)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestPPN_InvalidMode(t *testing.T) {
	_, err := New().PPN(&domain.PPNInput{DPP: rp(1), Rate: ppnRate, Mode: "gross"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPPnBM(t *testing.T) {
	l, err := New().PPnBM(&domain.PPnBMInput{DPP: rp(100_000_000), PPNRate: ppnRate, PPnBMRate: money.FromUnits(2000)})
	require.NoError(t, err)

	assert.Equal(t, rp(11_000_000), findRow(t, l, "PPN").Value)
	assert.Equal(t, rp(20_000_000), findRow(t, l, "PPnBM").Value)
	assert.Equal(t, rp(31_000_000), l.TotalTax)
	assert.Equal(t, "Total PPN + PPnBM", l.Rows[len(l.Rows)-1].Label)
	assert.Len(t, l.Rows, 7)
}

func TestBaseTimesRateEngines(t *testing.T) {
	c := New()

	l, err := c.PPh22(&domain.PPh22Input{DPP: rp(50_000_000), Rate: money.FromUnits(150)})
	require.NoError(t, err)
	assert.Equal(t, rp(750_000), l.TotalTax)
	assert.Equal(t, "PPh 22", l.Rows[0].Label)
	assert.Equal(t, "DPP", l.Rows[1].Label)

	l, err = c.PPh23(&domain.PPh23Input{Bruto: rp(10_000_000), Rate: money.FromUnits(200)})
	require.NoError(t, err)
	assert.Equal(t, rp(200_000), l.TotalTax)
	assert.Equal(t, "Penghasilan bruto", l.Rows[1].Label)

	l, err = c.PPh4_2(&domain.PPh4_2Input{Bruto: rp(120_000_000), Rate: money.FromUnits(1000)})
	require.NoError(t, err)
	assert.Equal(t, rp(12_000_000), l.TotalTax)
	assert.Equal(t, "PPh Final Pasal 4(2)", l.Rows[3].Label)
}

func TestRateEngines_RejectNegativeAndNil(t *testing.T) {
	c := New()

	_, err := c.PPh22(&domain.PPh22Input{DPP: rp(-1), Rate: money.FromUnits(150)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.PPh23(&domain.PPh23Input{Bruto: rp(1), Rate: money.FromUnits(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	calls := map[string]func() (*breakdown.Ledger, error){
		"pph22":  func() (*breakdown.Ledger, error) { return c.PPh22(nil) },
		"pph23":  func() (*breakdown.Ledger, error) { return c.PPh23(nil) },
		"pph4-2": func() (*breakdown.Ledger, error) { return c.PPh4_2(nil) },
		"ppn":    func() (*breakdown.Ledger, error) { return c.PPN(nil) },
		"ppnbm":  func() (*breakdown.Ledger, error) { return c.PPnBM(nil) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			l, err := call()
			assert.Nil(t, l)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, c.LastError(), name)
		})
	}
}

func TestRateEngines_AllocationFailure(t *testing.T) {
	c := New(WithAllocator(breakdown.NewLimitAllocator(1)))
	l, err := c.PPN(&domain.PPNInput{DPP: rp(1), Rate: ppnRate, Mode: domain.PPNExclusive})
	assert.Nil(t, l)
	assert.ErrorIs(t, err, domain.ErrAllocationFailure)
}
