package checkout

//go:generate mockgen -source=checkout.go -destination=../mocks/checkout.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrine/checkout-gateway/internal/domain/card"
	"github.com/vitrine/checkout-gateway/internal/domain/payment"
	"github.com/vitrine/checkout-gateway/internal/domain/pix"
	"github.com/vitrine/checkout-gateway/internal/usecase/generateqr"
)

// PixCharger issues the Pix charge for a checkout paid by instant transfer.
type PixCharger interface {
	Execute(ctx context.Context, req generateqr.Request) (*generateqr.Response, error)
}

type Request struct {
	Method      payment.Method
	UnitPrice   decimal.Decimal
	Quantity    int
	OrderID     string
	ReferenceID string
	Description string
	Card        card.Input
}

type Response struct {
	OrderID string
	Method  payment.Method
	Total   string
	Card    *card.Summary
	Pix     *generateqr.Response
}

type UseCase struct {
	validator *card.Validator
	pix       PixCharger
}

func NewUseCase(validator *card.Validator, pix PixCharger) *UseCase {
	return &UseCase{validator: validator, pix: pix}
}

// Execute prepares a checkout for submission. Card checkouts return the card
// summary once every field passes validation; nothing is charged. Pix
// checkouts return the charge to display.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	total, err := payment.Total(req.UnitPrice, req.Quantity)
	if err != nil {
		return nil, err
	}
	totalText, err := pix.FormatAmount(total)
	if err != nil {
		return nil, err
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	resp := &Response{
		OrderID: orderID,
		Method:  req.Method,
		Total:   totalText,
	}

	switch req.Method {
	case payment.MethodCard:
		c, err := uc.validator.Validate(req.Card)
		if err != nil {
			return nil, err
		}
		summary := c.Summary()
		resp.Card = &summary
	case payment.MethodPix:
		charge, err := uc.pix.Execute(ctx, generateqr.Request{
			Amount:      total,
			ReferenceID: req.ReferenceID,
			OrderID:     orderID,
			Description: req.Description,
			Quantity:    req.Quantity,
		})
		if err != nil {
			return nil, err
		}
		resp.Pix = charge
	default:
		return nil, payment.ErrUnknownMethod
	}

	return resp, nil
}
