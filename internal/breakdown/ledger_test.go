package breakdown

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadcom/pphc/internal/money"
)

func TestNew_Defaults(t *testing.T) {
	l, err := New(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, InitialCapacity, cap(l.Rows))
	assert.Equal(t, Truncate, l.policy)
}

func TestLedger_RowHelpers(t *testing.T) {
	l, err := New(nil, Truncate)
	require.NoError(t, err)

	require.NoError(t, l.AddSection("PPN"))
	require.NoError(t, l.AddCurrency("DPP", money.Rupiah(1000), "note"))
	require.NoError(t, l.AddPercent("Tarif", money.FromUnits(1100), ""))
	require.NoError(t, l.AddText("Catatan", "info"))
	require.NoError(t, l.AddGroup("Group"))
	require.NoError(t, l.AddSubtotal("Sub", money.Rupiah(5)))
	require.NoError(t, l.AddSpacer())
	require.NoError(t, l.AddTotal("PPN", money.Rupiah(110)))

	require.Equal(t, 8, l.Len())
	assert.Equal(t, Row{Label: "PPN", ValueType: ValueText, Variant: VariantSection}, l.Rows[0])
	assert.Equal(t, Row{Label: "DPP", Value: money.Rupiah(1000), ValueType: ValueCurrency, Note: "note", Variant: VariantNormal}, l.Rows[1])
	assert.Equal(t, ValuePercent, l.Rows[2].ValueType)
	assert.Equal(t, "info", l.Rows[3].Note)
	assert.Equal(t, VariantGroup, l.Rows[4].Variant)
	assert.Equal(t, VariantSubtotal, l.Rows[5].Variant)
	assert.Equal(t, Row{ValueType: ValueText, Variant: VariantSpacer}, l.Rows[6])
	assert.Equal(t, VariantTotal, l.Rows[7].Variant)

	assert.Equal(t, "1,000.0000", l.Rows[1].Display())
	assert.Equal(t, "11.00%", l.Rows[2].Display())
	assert.Empty(t, l.Rows[3].Display())
	assert.True(t, l.Rows[0].Emphasized())
	assert.False(t, l.Rows[1].Emphasized())
}

func TestLedger_GrowsByDoubling(t *testing.T) {
	l, err := New(nil, "")
	require.NoError(t, err)
	for i := 0; i < InitialCapacity+1; i++ {
		require.NoError(t, l.AddCurrency("row", money.Rupiah(int64(i)), ""))
	}
	assert.Equal(t, InitialCapacity+1, l.Len())
	assert.Equal(t, InitialCapacity*2, cap(l.Rows))
	assert.Equal(t, money.Rupiah(64), l.Rows[64].Value)
}

func TestLimitAllocator(t *testing.T) {
	t.Run("refuses_initial_reservation", func(t *testing.T) {
		_, err := New(NewLimitAllocator(10), "")
		assert.ErrorIs(t, err, ErrAllocation)
	})

	t.Run("refuses_growth", func(t *testing.T) {
		a := NewLimitAllocator(InitialCapacity)
		l, err := New(a, "")
		require.NoError(t, err)
		for i := 0; i < InitialCapacity; i++ {
			require.NoError(t, l.AddSpacer())
		}
		assert.ErrorIs(t, l.AddSpacer(), ErrAllocation)
		assert.Equal(t, InitialCapacity, l.Len())
		assert.Equal(t, InitialCapacity, a.InUse())

		l.Release()
		assert.Equal(t, 0, a.InUse())
	})

	t.Run("allows_growth_within_limit", func(t *testing.T) {
		a := NewLimitAllocator(InitialCapacity * 2)
		l, err := New(a, "")
		require.NoError(t, err)
		for i := 0; i <= InitialCapacity; i++ {
			require.NoError(t, l.AddSpacer())
		}
		assert.Equal(t, InitialCapacity*2, a.InUse())
	})
}

func TestLedger_Release(t *testing.T) {
	l, err := New(nil, "")
	require.NoError(t, err)
	require.NoError(t, l.AddTotal("x", money.Rupiah(1)))
	l.TotalTax = money.Rupiah(1)
	l.Withholding = &Withholding{}

	l.Release()
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.TotalTax.IsZero())
	assert.Nil(t, l.Withholding)

	l.Release()
	var nilLedger *Ledger
	nilLedger.Release()
}

func TestTextPolicy(t *testing.T) {
	long := strings.Repeat("a", 300)
	multibyte := strings.Repeat("é", 200)

	t.Run("truncate", func(t *testing.T) {
		l, err := New(nil, Truncate)
		require.NoError(t, err)
		require.NoError(t, l.AddCurrency(long, money.Zero, long))
		require.NoError(t, l.AddCurrency(multibyte, money.Zero, multibyte))

		assert.Len(t, l.Rows[0].Label, MaxLabelBytes)
		assert.Len(t, l.Rows[0].Note, MaxNoteBytes)
		assert.Len(t, l.Rows[1].Label, 254)
		assert.Len(t, l.Rows[1].Note, 126)
		assert.True(t, utf8.ValidString(l.Rows[1].Label))
		assert.True(t, utf8.ValidString(l.Rows[1].Note))
	})

	t.Run("reject", func(t *testing.T) {
		l, err := New(nil, Reject)
		require.NoError(t, err)
		assert.ErrorIs(t, l.AddSection(long), ErrTextTooLong)
		assert.ErrorIs(t, l.AddText("ok", long), ErrTextTooLong)
		assert.Equal(t, 0, l.Len())
		require.NoError(t, l.AddSection(strings.Repeat("a", MaxLabelBytes)))
	})

	t.Run("unbounded", func(t *testing.T) {
		l, err := New(nil, Unbounded)
		require.NoError(t, err)
		require.NoError(t, l.AddSection(long))
		assert.Equal(t, long, l.Rows[0].Label)
	})
}

func TestParseTextPolicy(t *testing.T) {
	for in, want := range map[string]TextPolicy{"": Truncate, "truncate": Truncate, "reject": Reject, "unbounded": Unbounded} {
		got, err := ParseTextPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseTextPolicy("shorten")
	assert.Error(t, err)
}

func TestWriter_KeepsFirstError(t *testing.T) {
	l, err := New(NewLimitAllocator(InitialCapacity), Reject)
	require.NoError(t, err)

	w := NewWriter(l)
	w.Section("ok")
	w.Currency(strings.Repeat("x", 400), money.Zero, "")
	w.Total("never written", money.Rupiah(1))

	assert.ErrorIs(t, w.Err(), ErrTextTooLong)
	assert.Equal(t, 1, l.Len())
}
