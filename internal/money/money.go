// Package money provides a fixed-point amount type counted in minor units (cents).
//
// Amounts are integers internally so sums and splits are exact. The decimal view
// (shopspring/decimal) is only used at the edges: parsing user input, JSON, and display.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by Cents.
const Scale = 2

// ErrInvalidAmount is returned when a string cannot be parsed as an amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Cents is an amount in minor currency units.
type Cents int64

// Zero is the zero amount.
const Zero Cents = 0

// Parse converts a decimal string such as "12.5", "1,234.56" or "$3" into Cents,
// rounding half away from zero to the nearest cent.
func Parse(s string) (Cents, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, ",", "")
	neg := strings.HasPrefix(clean, "-")
	clean = strings.TrimPrefix(clean, "-")
	clean = strings.TrimSpace(strings.TrimPrefix(clean, "$"))
	if clean == "" {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if neg {
		clean = "-" + clean
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	c, err := FromDecimal(d)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	return c, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Cents {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromDecimal rounds d to cents. Values that do not fit in Cents return ErrInvalidAmount.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	shifted := d.Round(Scale).Shift(Scale).BigInt()
	if !shifted.IsInt64() {
		return Zero, ErrInvalidAmount
	}
	return Cents(shifted.Int64()), nil
}

// Decimal returns the exact decimal value of c.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -Scale)
}

// String renders c with exactly two fractional digits, e.g. "12.30" or "-0.05".
func (c Cents) String() string {
	return c.Decimal().StringFixed(Scale)
}

// Abs returns the absolute value of c.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Min returns the smaller of a and b.
func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// Format renders the absolute value of c with a currency symbol, e.g. "$12.34".
func Format(c Cents, symbol string) string {
	return symbol + c.Abs().String()
}

// FormatSigned renders c with an explicit sign, e.g. "+$60.00" or "-$30.00".
// Zero is rendered with a plus sign.
func FormatSigned(c Cents, symbol string) string {
	if c < 0 {
		return "-" + Format(c, symbol)
	}
	return "+" + Format(c, symbol)
}

// MarshalJSON encodes c as a JSON number with two fractional digits.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
