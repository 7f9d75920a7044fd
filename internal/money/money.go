// Package money implements the fixed-point amount type used by every tax
// engine. A Money holds the amount multiplied by 10,000 in an int64, so four
// decimal places are exact and arithmetic never touches floating point.
// Rates reuse the same representation: 0.0500 is five percent.
package money

import (
	"math"
	"math/bits"
)

const (
	// DecimalPlaces is the number of implied fractional digits.
	DecimalPlaces = 4
	// Scale is the internal units per whole currency unit.
	Scale int64 = 10000

	thousandUnits = 1000 * Scale
)

// Money is an immutable amount scaled by Scale.
type Money struct {
	value int64
}

// Zero is the zero amount.
var Zero = Money{}

// Max is the largest representable amount.
var Max = Money{value: math.MaxInt64}

// New builds a Money from a whole part and four fractional digits,
// e.g. New(12, 500) is 12.0500.
func New(whole, frac4 int64) Money {
	return Money{value: whole*Scale + frac4}
}

// Rupiah builds a Money from whole currency units.
func Rupiah(whole int64) Money {
	return Money{value: whole * Scale}
}

// FromUnits wraps a raw internal value.
func FromUnits(units int64) Money {
	return Money{value: units}
}

// Units returns the raw internal value.
func (m Money) Units() int64 {
	return m.value
}

// Add saturates at Max (or its negation) instead of wrapping.
func (m Money) Add(o Money) Money {
	sum, ok := m.CheckedAdd(o)
	if !ok {
		return saturate(o.value > 0)
	}
	return sum
}

// Sub saturates like Add.
func (m Money) Sub(o Money) Money {
	diff, ok := m.CheckedSub(o)
	if !ok {
		return saturate(o.value < 0)
	}
	return diff
}

// CheckedAdd reports false when the sum does not fit in an int64.
func (m Money) CheckedAdd(o Money) (Money, bool) {
	sum := m.value + o.value
	if (o.value > 0 && sum < m.value) || (o.value < 0 && sum > m.value) {
		return Zero, false
	}
	return Money{value: sum}, true
}

// CheckedSub reports false when the difference does not fit in an int64.
func (m Money) CheckedSub(o Money) (Money, bool) {
	diff := m.value - o.value
	if (o.value > 0 && diff > m.value) || (o.value < 0 && diff < m.value) {
		return Zero, false
	}
	return Money{value: diff}, true
}

func (m Money) Neg() Money {
	return Money{value: -m.value}
}

// Mul multiplies an amount by a fraction held in the same scale (typically a
// rate). The product of the absolute values is formed in 128 bits and
// truncated back down by Scale, then the sign is reapplied. Results that do
// not fit in an int64 saturate at Max (or its negation).
func (m Money) Mul(o Money) Money {
	negative := (m.value < 0) != (o.value < 0)
	return signed(mulDiv(absUnits(m.value), absUnits(o.value), uint64(Scale)), negative)
}

// MulInt multiplies by a plain integer without rescaling. It saturates like
// Mul.
func (m Money) MulInt(scalar int64) Money {
	product, ok := m.CheckedMulInt(scalar)
	if !ok {
		return saturate((m.value < 0) != (scalar < 0))
	}
	return product
}

// CheckedMulInt reports false when the product does not fit in an int64.
func (m Money) CheckedMulInt(scalar int64) (Money, bool) {
	hi, lo := bits.Mul64(absUnits(m.value), absUnits(scalar))
	if hi != 0 || lo > math.MaxInt64 {
		return Zero, false
	}
	return signed(lo, (m.value < 0) != (scalar < 0)), true
}

// Percent returns m*num/den truncated toward zero, so Percent(5, 100) is five
// percent. The intermediate product does not overflow; the result saturates
// like Mul. A zero denominator yields Zero.
func (m Money) Percent(num, den int64) Money {
	if den == 0 {
		return Zero
	}
	negative := (m.value < 0) != (num < 0) != (den < 0)
	return signed(mulDiv(absUnits(m.value), absUnits(num), absUnits(den)), negative)
}

// Div divides by a plain integer, truncating toward zero. A zero divisor
// yields Zero.
func (m Money) Div(divisor int64) Money {
	if divisor == 0 {
		return Zero
	}
	return Money{value: m.value / divisor}
}

// Cmp returns -1, 0 or 1.
func (m Money) Cmp(o Money) int {
	switch {
	case m.value < o.value:
		return -1
	case m.value > o.value:
		return 1
	default:
		return 0
	}
}

func (m Money) Min(o Money) Money {
	if m.value < o.value {
		return m
	}
	return o
}

func (m Money) Max(o Money) Money {
	if m.value > o.value {
		return m
	}
	return o
}

func (m Money) IsZero() bool     { return m.value == 0 }
func (m Money) IsNegative() bool { return m.value < 0 }
func (m Money) IsPositive() bool { return m.value > 0 }

// Floor clamps negative amounts to zero. It is not a mathematical floor.
func (m Money) Floor() Money {
	if m.value < 0 {
		return Zero
	}
	return m
}

// RoundDownThousand truncates to a multiple of 1,000 currency units, the
// rounding applied to PKP. Negative amounts become zero.
func (m Money) RoundDownThousand() Money {
	if m.value < 0 {
		return Zero
	}
	return Money{value: m.value / thousandUnits * thousandUnits}
}

// mulDiv computes a*b/d with a 128-bit intermediate, clamped to MaxInt64.
func mulDiv(a, b, d uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, d)
	if q > math.MaxInt64 {
		return math.MaxInt64
	}
	return q
}

func saturate(negative bool) Money {
	if negative {
		return Max.Neg()
	}
	return Max
}

func signed(mag uint64, negative bool) Money {
	if negative {
		return Money{value: -int64(mag)}
	}
	return Money{value: int64(mag)}
}

func absUnits(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}
