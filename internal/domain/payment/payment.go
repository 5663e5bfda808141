package payment

import (
	"errors"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodPix  Method = "pix"
	MethodCard Method = "card"
)

var (
	ErrUnknownMethod  = errors.New("unknown payment method")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodPix, MethodCard:
		return Method(s), nil
	case "":
		return MethodPix, nil
	}
	return "", ErrUnknownMethod
}

// Total multiplies unitPrice by quantity; a non-positive quantity counts as one.
func Total(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if unitPrice.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if quantity <= 0 {
		quantity = 1
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}
