package taxtable

import (
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
)

// Sentinel is the ceiling of the open-ended top bracket, 2,147,483,647.
var Sentinel = money.Rupiah(2147483647)

// rate converts hundredths of a percent (basis points) to a Money rate.
func rate(bp int64) money.Money { return money.FromUnits(bp) }

type row struct {
	ceiling int64
	bp      int64
}

func brackets(rows []row) []Bracket {
	out := make([]Bracket, len(rows))
	for i, r := range rows {
		c := Sentinel
		if r.ceiling > 0 {
			c = money.Rupiah(r.ceiling)
		}
		out[i] = Bracket{Ceiling: c, Rate: rate(r.bp)}
	}
	return out
}

// A zero ceiling marks the open-ended top bracket.
var terMonthlyA = []row{
	{5_400_000, 0}, {5_650_000, 25}, {5_950_000, 50}, {6_300_000, 75},
	{6_750_000, 100}, {7_500_000, 125}, {8_550_000, 150}, {9_650_000, 175},
	{10_050_000, 200}, {10_350_000, 225}, {10_700_000, 250}, {11_050_000, 300},
	{11_600_000, 350}, {12_500_000, 400}, {13_750_000, 500}, {15_100_000, 600},
	{16_950_000, 700}, {19_750_000, 800}, {24_150_000, 900}, {26_450_000, 1000},
	{28_000_000, 1100}, {30_050_000, 1200}, {32_400_000, 1300}, {35_400_000, 1400},
	{39_100_000, 1500}, {43_850_000, 1600}, {47_800_000, 1700}, {51_400_000, 1800},
	{56_300_000, 1900}, {62_200_000, 2000}, {68_600_000, 2100}, {77_500_000, 2200},
	{89_000_000, 2300}, {103_000_000, 2400}, {125_000_000, 2500}, {157_000_000, 2600},
	{206_000_000, 2700}, {337_000_000, 2800}, {454_000_000, 2900}, {550_000_000, 3000},
	{695_000_000, 3100}, {910_000_000, 3200}, {1_400_000_000, 3300}, {0, 3400},
}

var terMonthlyB = []row{
	{6_200_000, 0}, {6_500_000, 25}, {6_850_000, 50}, {7_300_000, 75},
	{9_200_000, 100}, {10_750_000, 150}, {11_250_000, 200}, {11_600_000, 250},
	{12_600_000, 300}, {13_600_000, 400}, {14_950_000, 500}, {16_400_000, 600},
	{18_450_000, 700}, {21_850_000, 800}, {26_000_000, 900}, {27_700_000, 1000},
	{29_350_000, 1100}, {31_450_000, 1200}, {33_950_000, 1300}, {37_100_000, 1400},
	{41_100_000, 1500}, {45_800_000, 1600}, {49_500_000, 1700}, {53_800_000, 1800},
	{58_500_000, 1900}, {64_000_000, 2000}, {71_000_000, 2100}, {80_000_000, 2200},
	{93_000_000, 2300}, {109_000_000, 2400}, {129_000_000, 2500}, {163_000_000, 2600},
	{211_000_000, 2700}, {374_000_000, 2800}, {459_000_000, 2900}, {555_000_000, 3000},
	{704_000_000, 3100}, {957_000_000, 3200}, {1_405_000_000, 3300}, {0, 3400},
}

var terMonthlyC = []row{
	{6_600_000, 0}, {6_950_000, 25}, {7_350_000, 50}, {7_800_000, 75},
	{8_850_000, 100}, {9_800_000, 125}, {10_950_000, 150}, {11_200_000, 175},
	{12_050_000, 200}, {12_950_000, 300}, {14_150_000, 400}, {15_550_000, 500},
	{17_050_000, 600}, {19_500_000, 700}, {22_700_000, 800}, {26_600_000, 900},
	{28_100_000, 1000}, {30_100_000, 1100}, {32_600_000, 1200}, {35_400_000, 1300},
	{38_900_000, 1400}, {43_000_000, 1500}, {47_400_000, 1600}, {51_200_000, 1700},
	{55_800_000, 1800}, {60_400_000, 1900}, {66_700_000, 2000}, {74_500_000, 2100},
	{83_200_000, 2200}, {95_600_000, 2300}, {110_000_000, 2400}, {134_000_000, 2500},
	{169_000_000, 2600}, {221_000_000, 2700}, {390_000_000, 2800}, {463_000_000, 2900},
	{561_000_000, 3000}, {709_000_000, 3100}, {965_000_000, 3200}, {1_419_000_000, 3300},
	{0, 3400},
}

var terDaily = map[domain.TERCategory][]row{
	domain.TERCategoryA: {{750_000, 25}, {2_500_000, 150}, {0, 200}},
	domain.TERCategoryB: {{750_000, 25}, {2_500_000, 125}, {0, 175}},
	domain.TERCategoryC: {{750_000, 25}, {2_500_000, 100}, {0, 150}},
}

func statutory() *Set {
	return &Set{
		Name: "PP 58/2023",
		Allowances: map[domain.PTKPStatus]money.Money{
			domain.PTKPTK0: money.Rupiah(54_000_000),
			domain.PTKPTK1: money.Rupiah(58_500_000),
			domain.PTKPTK2: money.Rupiah(63_000_000),
			domain.PTKPTK3: money.Rupiah(67_500_000),
			domain.PTKPK0:  money.Rupiah(58_500_000),
			domain.PTKPK1:  money.Rupiah(63_000_000),
			domain.PTKPK2:  money.Rupiah(67_500_000),
			domain.PTKPK3:  money.Rupiah(72_000_000),
		},
		Layers: []Layer{
			{Width: money.Rupiah(60_000_000), Rate: rate(500)},
			{Width: money.Rupiah(190_000_000), Rate: rate(1500)},
			{Width: money.Rupiah(250_000_000), Rate: rate(2500)},
			{Width: money.Rupiah(4_500_000_000), Rate: rate(3000)},
			{Width: Sentinel, Rate: rate(3500)},
		},
		Monthly: map[domain.TERCategory][]Bracket{
			domain.TERCategoryA: brackets(terMonthlyA),
			domain.TERCategoryB: brackets(terMonthlyB),
			domain.TERCategoryC: brackets(terMonthlyC),
		},
		Daily: map[domain.TERCategory][]Bracket{
			domain.TERCategoryA: brackets(terDaily[domain.TERCategoryA]),
			domain.TERCategoryB: brackets(terDaily[domain.TERCategoryB]),
			domain.TERCategoryC: brackets(terDaily[domain.TERCategoryC]),
		},
	}
}
