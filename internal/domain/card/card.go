// Package card performs offline shape checks on card-style payment
// instruments: number checksum, brand, expiry and CVV length. It never
// contacts a payment network and is not an authorization or fraud control.
package card

import "strings"

type Brand string

const (
	Visa       Brand = "visa"
	Mastercard Brand = "mastercard"
	Amex       Brand = "amex"
	Unknown    Brand = "unknown"
)

type Card struct {
	Number     string
	HolderName string
	ExpMonth   int
	ExpYear    int
	CVV        string
	Brand      Brand
}

// Summary is the part of a card that may leave the checkout form.
type Summary struct {
	Last4      string `json:"last4"`
	Masked     string `json:"masked"`
	Brand      Brand  `json:"brand"`
	HolderName string `json:"holder_name"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
}

func (c *Card) Summary() Summary {
	return Summary{
		Last4:      lastN(c.Number, 4),
		Masked:     Mask(c.Number),
		Brand:      c.Brand,
		HolderName: c.HolderName,
		ExpMonth:   c.ExpMonth,
		ExpYear:    c.ExpYear,
	}
}

// OnlyDigits drops every character of s that is not an ASCII digit.
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Mask keeps the first six and last four digits of a number.
func Mask(number string) string {
	digits := OnlyDigits(number)
	n := len(digits)
	switch {
	case n == 0:
		return ""
	case n <= 4:
		return strings.Repeat("*", n)
	case n < 10:
		return strings.Repeat("*", n-4) + digits[n-4:]
	}
	return digits[:6] + strings.Repeat("*", n-10) + digits[n-4:]
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
