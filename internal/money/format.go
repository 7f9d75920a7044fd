package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidFormat is returned by the parsers for malformed input.
var ErrInvalidFormat = errors.New("invalid money format")

// String renders the fixed "whole.ffff" form, e.g. "-1234.5000".
func (m Money) String() string {
	whole, frac := m.split()
	s := strconv.FormatUint(whole, 10) + "." + pad4(frac)
	if m.value < 0 {
		return "-" + s
	}
	return s
}

// Formatted renders the amount with comma thousands separators,
// e.g. "10,000,000.0000".
func (m Money) Formatted() string {
	whole, frac := m.split()
	s := group(strconv.FormatUint(whole, 10), ',') + "." + pad4(frac)
	if m.value < 0 {
		return "-" + s
	}
	return s
}

// PercentString renders a rate as percentage points with two decimals,
// e.g. 0.0500 becomes "5.00%".
func (m Money) PercentString() string {
	hundredths := decimal.New(m.value, 0).Mul(decimal.New(10000, 0)).Div(decimal.New(Scale, 0))
	return hundredths.Shift(-2).StringFixed(2) + "%"
}

// FormatIDR renders the amount the way Indonesian documents print it:
// "Rp 10.000.000" with "." grouping and a "," decimal part only when the
// fraction is non-zero.
func (m Money) FormatIDR() string {
	whole, frac := m.split()
	s := "Rp " + group(strconv.FormatUint(whole, 10), '.')
	if frac != 0 {
		s += "," + strings.TrimRight(pad4(frac), "0")
	}
	if m.value < 0 {
		return "-" + s
	}
	return s
}

// Parse reads the plain form: optional sign, integer digits and an optional
// "." followed by fraction digits. Fraction digits past the fourth are
// dropped. Leading and trailing blanks are ignored.
func Parse(s string) (Money, error) {
	s = strings.Trim(s, " \t")
	negative, body := splitSign(s)

	intPart, fracPart, _ := strings.Cut(body, ".")
	if intPart == "" && fracPart == "" {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return assemble(negative, intPart, fracPart, s)
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseID reads the Indonesian locale form: "." groups thousands and ","
// separates the fraction, e.g. "10.000.000,50". Any other character makes
// the whole input invalid; the returned amount is then Zero.
func ParseID(s string) (Money, error) {
	s = strings.Trim(s, " \t")
	negative, body := splitSign(s)

	intPart, fracPart, _ := strings.Cut(body, ",")
	intPart = strings.ReplaceAll(intPart, ".", "")
	if intPart == "" && fracPart == "" {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return assemble(negative, intPart, fracPart, s)
}

// FromDecimal converts, truncating digits beyond the fourth decimal place.
func FromDecimal(d decimal.Decimal) (Money, error) {
	units := d.Shift(DecimalPlaces).Truncate(0)
	if units.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || units.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return Zero, fmt.Errorf("%w: %s out of range", ErrInvalidFormat, d.String())
	}
	return Money{value: units.IntPart()}, nil
}

// Decimal returns the exact arbitrary-precision value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.value, -DecimalPlaces)
}

// MarshalJSON encodes as a JSON string in the plain form.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts a JSON string in the plain form or a JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*m = Zero
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidFormat, raw)
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, raw)
	}
	parsed, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) split() (whole, frac uint64) {
	mag := absUnits(m.value)
	return mag / uint64(Scale), mag % uint64(Scale)
}

func assemble(negative bool, intPart, fracPart, original string) (Money, error) {
	if len(fracPart) > DecimalPlaces {
		fracPart = fracPart[:DecimalPlaces]
	}
	fracPart += strings.Repeat("0", DecimalPlaces-len(fracPart))

	var whole uint64
	if intPart != "" {
		var err error
		whole, err = strconv.ParseUint(intPart, 10, 64)
		if err != nil {
			return Zero, fmt.Errorf("%w: %q out of range", ErrInvalidFormat, original)
		}
	}
	frac, _ := strconv.ParseUint(fracPart, 10, 64)

	if whole > (math.MaxUint64-frac)/uint64(Scale) {
		return Zero, fmt.Errorf("%w: %q out of range", ErrInvalidFormat, original)
	}
	mag := whole*uint64(Scale) + frac

	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}
	if mag > limit {
		return Zero, fmt.Errorf("%w: %q out of range", ErrInvalidFormat, original)
	}
	if negative {
		return Money{value: int64(-mag)}, nil
	}
	return Money{value: int64(mag)}, nil
}

func splitSign(s string) (negative bool, body string) {
	switch {
	case strings.HasPrefix(s, "-"):
		return true, s[1:]
	case strings.HasPrefix(s, "+"):
		return false, s[1:]
	default:
		return false, s
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func pad4(frac uint64) string {
	s := strconv.FormatUint(frac, 10)
	return strings.Repeat("0", DecimalPlaces-len(s)) + s
}

func group(digits string, sep byte) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
