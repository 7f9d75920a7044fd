package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
)

func TestMoneyValue_Set(t *testing.T) {
	tests := []struct {
		in   string
		want money.Money
	}{
		{"10000000", money.Rupiah(10_000_000)},
		{"1.500", money.New(1, 5000)},
		{"1.500.000", money.Rupiah(1_500_000)},
		{"1.500,25", money.New(1500, 2500)},
		{"1500,5", money.New(1500, 5000)},
		{"10000000.50", money.New(10_000_000, 5000)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var m money.Money
			require.NoError(t, newMoneyValue(&m, money.Zero).Set(tt.in))
			assert.Equal(t, tt.want, m)
		})
	}

	var m money.Money
	assert.ErrorIs(t, newMoneyValue(&m, money.Zero).Set("1.500.00.0,1,2"), money.ErrInvalidFormat)
}

func TestRateValue_Set(t *testing.T) {
	tests := []struct {
		in   string
		want money.Money
	}{
		{"11%", money.FromUnits(1100)},
		{"1.5%", money.FromUnits(150)},
		{"0.25%", money.FromUnits(25)},
		{" 2 %", money.FromUnits(200)},
		{"0.11", money.FromUnits(1100)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var m money.Money
			require.NoError(t, newRateValue(&m, money.Zero).Set(tt.in))
			assert.Equal(t, tt.want, m)
		})
	}

	var m money.Money
	err := newRateValue(&m, money.Zero).Set("0.125%")
	assert.ErrorContains(t, err, "more than 4 decimal places")
	assert.ErrorIs(t, newRateValue(&m, money.Zero).Set("abc%"), money.ErrInvalidFormat)
}

func TestBonusValue_Set(t *testing.T) {
	var list []domain.Bonus
	v := &bonusValue{list: &list}
	require.NoError(t, v.Set("3:1.000.000:THR"))
	require.NoError(t, v.Set("12:500000"))
	assert.Equal(t, []domain.Bonus{
		{Month: 3, Amount: money.Rupiah(1_000_000), Name: "THR"},
		{Month: 12, Amount: money.Rupiah(500_000)},
	}, list)
	assert.Error(t, v.Set("3"))
}
