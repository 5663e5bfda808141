package card

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minExpiryYear = 2000
	maxExpiryYear = 2100
)

var ErrExpiryFormat = errors.New("expiry must be MM/YY or MM/YYYY")

var expiryPattern = regexp.MustCompile(`^(\d{2})\s*/\s*(\d{2,4})$`)

// IsValidExpiry checks month and year against the current date.
func IsValidExpiry(month, year int) bool {
	return IsValidExpiryAt(month, year, time.Now())
}

// IsValidExpiryAt checks month and year against now. A card is usable through
// the whole of its expiry month.
func IsValidExpiryAt(month, year int, now time.Time) bool {
	if !expiryInRange(month, year) {
		return false
	}
	if year < now.Year() {
		return false
	}
	return !(year == now.Year() && month < int(now.Month()))
}

// ParseExpiry reads the card face format. Two-digit years are taken as 20YY.
func ParseExpiry(s string) (month, year int, err error) {
	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, ErrExpiryFormat
	}
	yearText := m[2]
	if len(yearText) == 2 {
		yearText = "20" + yearText
	}
	month, _ = strconv.Atoi(m[1])
	year, _ = strconv.Atoi(yearText)
	return month, year, nil
}

func expiryInRange(month, year int) bool {
	return month >= 1 && month <= 12 && year >= minExpiryYear && year <= maxExpiryYear
}
