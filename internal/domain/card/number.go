package card

import (
	"strconv"
	"strings"
)

const minNumberLength = 12

// IsValidNumber reports whether digits is at least 12 digits long and passes
// the Luhn checksum.
func IsValidNumber(digits string) bool {
	if len(digits) < minNumberLength {
		return false
	}
	sum, double := 0, false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func DetectBrand(digits string) Brand {
	d := OnlyDigits(digits)
	if d == "" {
		return Unknown
	}
	if strings.HasPrefix(d, "4") {
		return Visa
	}
	if p, ok := prefix(d, 2); ok && p >= 51 && p <= 55 {
		return Mastercard
	}
	if p, ok := prefix(d, 4); ok && p >= 2221 && p <= 2720 {
		return Mastercard
	}
	if strings.HasPrefix(d, "34") || strings.HasPrefix(d, "37") {
		return Amex
	}
	return Unknown
}

func RequiredCVVLength(b Brand) int {
	if b == Amex {
		return 4
	}
	return 3
}

func prefix(d string, n int) (int, bool) {
	if len(d) < n {
		return 0, false
	}
	v, err := strconv.Atoi(d[:n])
	return v, err == nil
}
