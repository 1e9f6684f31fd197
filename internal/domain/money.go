package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds d to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders d with two decimals behind the currency symbol.
func FormatMoney(symbol string, d decimal.Decimal) string {
	return symbol + Round2(d).StringFixed(2)
}

// ParseMoney parses a non-negative amount such as "8.99".
func ParseMoney(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, NewValidationError(field, "invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, NewValidationError(field, "must not be negative")
	}
	return d, nil
}

// MustMoney is ParseMoney for literals known to be valid.
func MustMoney(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
