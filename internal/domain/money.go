package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the number of fractional digits carried by Money.
const moneyPlaces = 4

// moneyUnit is the scale factor: one currency unit in ten-thousandths.
const moneyUnit = 10000

// Money is a fixed-point monetary amount stored as ten-thousandths of a
// currency unit, e.g. MoneyFromUnits(15000) is 1.5. All arithmetic is exact
// integer arithmetic; rounding happens only when parsing text input.
type Money int64

// MoneyFromUnits creates a Money from its raw scaled representation.
func MoneyFromUnits(units int64) Money {
	return Money(units)
}

// MoneyFromString parses decimal text like "1.2345", rounding half away
// from zero to four fractional digits.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return Money(d.Round(moneyPlaces).Shift(moneyPlaces).IntPart()), nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// IsNegative reports whether m is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m >= other
}

// String renders the canonical text form: sign, no exponent, trailing
// fractional zeros stripped. MoneyFromUnits(-15000).String() is "-1.5".
func (m Money) String() string {
	units := int64(m)

	var sign string
	if units < 0 {
		sign = "-"
		units = -units
	}

	whole := units / moneyUnit
	frac := units % moneyUnit

	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}

	fracDigits := strings.TrimRight(fmt.Sprintf("%04d", frac), "0")

	return fmt.Sprintf("%s%d.%s", sign, whole, fracDigits)
}
