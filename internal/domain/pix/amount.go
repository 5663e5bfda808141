package pix

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount must be a non-negative value with two decimal places")

// FormatAmount renders d with exactly two fractional digits, rounding half away from zero.
func FormatAmount(d decimal.Decimal) (string, error) {
	if d.IsNegative() {
		return "", fmt.Errorf("%w: %s", ErrInvalidAmount, d.String())
	}
	return d.StringFixed(2), nil
}

// validAmount accepts only the canonical form FormatAmount produces.
func validAmount(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return false
	}
	return d.StringFixed(2) == s
}
