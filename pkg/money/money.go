package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits kept for all monetary
// amounts. Matches the NUMERIC(10,2) columns in the database.
const Precision = 2

// Zero is a reusable zero amount.
var Zero = decimal.Zero

// Parse parses a human-entered amount string and normalizes it to two
// fractional digits.
func Parse(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format: %w", err)
	}

	return Round(d), nil
}

// FromFloat converts a float (e.g. decoded from JSON) to a normalized amount.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// Round rounds half-up at the money precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// IsPositive reports whether the amount is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}

// IsValid reports whether d is a well-formed monetary amount: strictly
// positive and expressible in at most two fractional digits. Amounts
// with sub-cent precision are rejected rather than silently rounded.
func IsValid(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero) && d.Equal(Round(d))
}

// FloorBonus computes floor(amount * rate) in whole coins. Used for
// goal completion bonuses (10% of target, rounded down).
func FloorBonus(amount decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Floor()
}

// String renders the amount with exactly two fractional digits.
func String(d decimal.Decimal) string {
	return d.StringFixed(Precision)
}
