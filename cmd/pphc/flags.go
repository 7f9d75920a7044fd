package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
)

// moneyValue is a flag holding an amount. It accepts the plain form
// ("10000000.50") and the Indonesian form ("10.000.000,50"). A comma or more
// than one dot selects the Indonesian form; a single dot is a decimal point,
// so "1.500" is one and a half.
type moneyValue struct{ m *money.Money }

func newMoneyValue(p *money.Money, def money.Money) *moneyValue {
	*p = def
	return &moneyValue{m: p}
}

func (v *moneyValue) String() string {
	if v.m == nil {
		return ""
	}
	return v.m.String()
}

func (v *moneyValue) Set(s string) error {
	parse := money.Parse
	if strings.Contains(s, ",") || strings.Count(s, ".") > 1 {
		parse = money.ParseID
	}
	m, err := parse(s)
	if err != nil {
		return err
	}
	*v.m = m
	return nil
}

func (v *moneyValue) Type() string { return "amount" }

// rateValue is a flag holding a rate. "11%" and "0.11" are the same rate.
type rateValue struct{ moneyValue }

func newRateValue(p *money.Money, def money.Money) *rateValue {
	return &rateValue{*newMoneyValue(p, def)}
}

func (v *rateValue) Set(s string) error {
	if pct, ok := strings.CutSuffix(strings.TrimSpace(s), "%"); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(pct))
		if err != nil {
			return fmt.Errorf("rate %q: %w", s, money.ErrInvalidFormat)
		}
		r := d.Shift(-2)
		if !r.Equal(r.Truncate(money.DecimalPlaces)) {
			return fmt.Errorf("rate %q: more than %d decimal places", s, money.DecimalPlaces)
		}
		m, err := money.FromDecimal(r)
		if err != nil {
			return err
		}
		*v.m = m
		return nil
	}
	return v.moneyValue.Set(s)
}

func (v *rateValue) Type() string { return "rate" }

// bonusValue collects repeated --bonus MONTH:AMOUNT[:NAME] flags.
type bonusValue struct{ list *[]domain.Bonus }

func (v *bonusValue) String() string {
	if v.list == nil {
		return ""
	}
	parts := make([]string, 0, len(*v.list))
	for _, b := range *v.list {
		parts = append(parts, fmt.Sprintf("%d:%s:%s", b.Month, b.Amount, b.Name))
	}
	return strings.Join(parts, ",")
}

func (v *bonusValue) Set(s string) error {
	fields := strings.SplitN(s, ":", 3)
	if len(fields) < 2 {
		return fmt.Errorf("bonus %q: want MONTH:AMOUNT[:NAME]", s)
	}
	month, err := strconv.Atoi(fields[0])
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("bonus %q: month must be 1-12", s)
	}
	var amount money.Money
	if err := (&moneyValue{m: &amount}).Set(fields[1]); err != nil {
		return fmt.Errorf("bonus %q: %w", s, err)
	}
	b := domain.Bonus{Month: month, Amount: amount}
	if len(fields) == 3 {
		b.Name = fields[2]
	}
	*v.list = append(*v.list, b)
	return nil
}

func (v *bonusValue) Type() string { return "bonus" }
