package taxtable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
)

func TestStatutoryShape(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	assert.Len(t, s.Monthly[domain.TERCategoryA], 44)
	assert.Len(t, s.Monthly[domain.TERCategoryB], 40)
	assert.Len(t, s.Monthly[domain.TERCategoryC], 41)
	for _, cat := range domain.TERCategories {
		assert.Len(t, s.Daily[cat], 3)
		assert.Equal(t, Sentinel, s.Monthly[cat][len(s.Monthly[cat])-1].Ceiling)
		assert.Equal(t, money.FromUnits(3400), s.Monthly[cat][len(s.Monthly[cat])-1].Rate)
	}
}

func TestPTKP(t *testing.T) {
	tests := map[domain.PTKPStatus]int64{
		domain.PTKPTK0: 54_000_000,
		domain.PTKPTK1: 58_500_000,
		domain.PTKPTK2: 63_000_000,
		domain.PTKPTK3: 67_500_000,
		domain.PTKPK0:  58_500_000,
		domain.PTKPK1:  63_000_000,
		domain.PTKPK2:  67_500_000,
		domain.PTKPK3:  72_000_000,
	}
	for status, want := range tests {
		assert.Equal(t, money.Rupiah(want), PTKP(status), string(status))
	}
	assert.Equal(t, money.Rupiah(54_000_000), PTKP("K/7"))
}

func TestProgressive(t *testing.T) {
	tests := []struct {
		pkp  int64
		want int64
	}{
		{0, 0},
		{-5_000_000, 0},
		{60_000_000, 3_000_000},
		{250_000_000, 31_500_000},
		{500_000_000, 94_000_000},
		{5_000_000_000, 1_444_000_000},
		{6_000_000_000, 1_794_000_000},
	}
	for _, tt := range tests {
		assert.Equal(t, money.Rupiah(tt.want), Progressive(money.Rupiah(tt.pkp)), "pkp %d", tt.pkp)
	}
}

func TestProgressive_MonotoneWithLayerSlope(t *testing.T) {
	slopes := []struct {
		from, to int64
		bp       int64
	}{
		{0, 60_000_000, 500},
		{60_000_000, 250_000_000, 1500},
		{250_000_000, 500_000_000, 2500},
		{500_000_000, 5_000_000_000, 3000},
		{5_000_000_000, 9_000_000_000, 3500},
	}
	step := money.Rupiah(1_000_000)
	for _, sl := range slopes {
		for x := money.Rupiah(sl.from); x.Add(step).Cmp(money.Rupiah(sl.to)) <= 0; x = x.Add(step.MulInt(37)) {
			delta := Progressive(x.Add(step)).Sub(Progressive(x))
			assert.Equal(t, step.Mul(money.FromUnits(sl.bp)), delta, "at %s", x)
		}
	}
}

func TestProgressiveLayers(t *testing.T) {
	uses := ProgressiveLayers(money.Rupiah(300_000_000))
	require.Len(t, uses, 3)
	assert.Equal(t, money.Rupiah(60_000_000), uses[0].Taxable)
	assert.Equal(t, money.Rupiah(190_000_000), uses[1].Taxable)
	assert.Equal(t, money.Rupiah(50_000_000), uses[2].Taxable)
	assert.Equal(t, money.Rupiah(12_500_000), uses[2].Tax)

	assert.Empty(t, ProgressiveLayers(money.Zero))

	top := ProgressiveLayers(money.Rupiah(10_000_000_000))
	require.Len(t, top, 5)
	assert.Equal(t, money.Rupiah(5_000_000_000), top[4].Taxable)
}

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		name   string
		cat    domain.TERCategory
		income money.Money
		bp     int64
	}{
		{"A_zero_band_ceiling_inclusive", domain.TERCategoryA, money.Rupiah(5_400_000), 0},
		{"A_just_above_ceiling", domain.TERCategoryA, money.New(5_400_000, 1), 25},
		{"A_10m", domain.TERCategoryA, money.Rupiah(10_000_000), 200},
		{"A_top_regular", domain.TERCategoryA, money.Rupiah(1_400_000_000), 3300},
		{"A_top", domain.TERCategoryA, money.Rupiah(1_400_000_001), 3400},
		{"B_first", domain.TERCategoryB, money.Rupiah(6_200_000), 0},
		{"B_mid", domain.TERCategoryB, money.Rupiah(9_000_000), 100},
		{"B_250m", domain.TERCategoryB, money.Rupiah(250_000_000), 2800},
		{"B_500m", domain.TERCategoryB, money.Rupiah(500_000_000), 3000},
		{"C_first", domain.TERCategoryC, money.Rupiah(6_600_000), 0},
		{"C_12m", domain.TERCategoryC, money.Rupiah(12_000_000), 200},
		{"C_beyond_sentinel", domain.TERCategoryC, money.Max, 3400},
		{"unknown_category_uses_A", "Z", money.Rupiah(5_500_000), 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, money.FromUnits(tt.bp), MonthlyRate(tt.cat, tt.income))
		})
	}
}

func TestMonthlyRate_Monotone(t *testing.T) {
	for _, cat := range domain.TERCategories {
		prev := money.Zero
		for income := money.Zero; income.Cmp(money.Rupiah(2_000_000_000)) <= 0; income = income.Add(money.Rupiah(250_000)) {
			r := MonthlyRate(cat, income)
			assert.True(t, r.Cmp(prev) >= 0, "%s at %s", cat, income)
			prev = r
		}
	}
}

func TestDailyRate(t *testing.T) {
	assert.Equal(t, money.FromUnits(25), DailyRate(domain.TERCategoryB, money.Rupiah(750_000)))
	assert.Equal(t, money.FromUnits(125), DailyRate(domain.TERCategoryB, money.Rupiah(750_001)))
	assert.Equal(t, money.FromUnits(200), DailyRate(domain.TERCategoryA, money.Rupiah(3_000_000)))
	assert.Equal(t, money.FromUnits(100), DailyRate(domain.TERCategoryC, money.Rupiah(2_500_000)))
}

func TestYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, Default()))

	loaded, err := LoadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

const smallTables = `
name: test
ptkp:
  TK/0: 54000000
  TK/1: 58500000
  TK/2: 63000000
  TK/3: 67500000
  K/0: 58500000
  K/1: 63000000
  K/2: 67500000
  K/3: 72000000
pasal17:
  - {width: 100000000, rate: "0.10"}
  - {width: max, rate: "0.20"}
ter_monthly:
  a: [{ceiling: 10000000, rate: 0}, {ceiling: max, rate: "0.05"}]
  b: [{ceiling: max, rate: "0.05"}]
  c: [{ceiling: max, rate: "0.05"}]
ter_daily:
  A: [{ceiling: max, rate: "0.01"}]
  B: [{ceiling: max, rate: "0.01"}]
  C: [{ceiling: max, rate: "0.01"}]
`

func TestLoadYAML(t *testing.T) {
	s, err := LoadYAML(strings.NewReader(smallTables))
	require.NoError(t, err)

	assert.Equal(t, "test", s.Name)
	assert.Equal(t, money.Rupiah(10_000_000), s.Progressive(money.Rupiah(100_000_000)))
	assert.Equal(t, money.Rupiah(30_000_000), s.Progressive(money.Rupiah(200_000_000)))
	assert.Equal(t, money.Zero, s.MonthlyRate(domain.TERCategoryA, money.Rupiah(10_000_000)))
	assert.Equal(t, money.FromUnits(500), s.MonthlyRate(domain.TERCategoryA, money.Rupiah(10_000_001)))
}

func TestLoadYAML_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing_ptkp":   strings.Replace(smallTables, "  K/3: 72000000\n", "", 1),
		"unknown_status": strings.Replace(smallTables, "K/3:", "K/4:", 1),
		"bad_amount":     strings.Replace(smallTables, "TK/0: 54000000", "TK/0: lots", 1),
		"not_increasing": strings.Replace(smallTables, "{ceiling: 10000000, rate: 0}", "{ceiling: max, rate: 0}", 1),
		"missing_table":  strings.Replace(smallTables, "  c: [{ceiling: max, rate: \"0.05\"}]\n", "", 1),
		"unknown_field":  smallTables + "extra: 1\n",
		"bad_category":   strings.Replace(smallTables, "  C: [", "  D: [", 1),
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(doc))
			assert.ErrorIs(t, err, domain.ErrInvalidTable)
		})
	}
}
