package http //nolint:revive // directory-based package name, imported with alias

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vitrine/checkout-gateway/internal/domain/card"
	"github.com/vitrine/checkout-gateway/internal/domain/payment"
	"github.com/vitrine/checkout-gateway/internal/usecase/checkout"
)

type CardValidationResponse struct {
	Valid  bool              `json:"valid"`
	Brand  card.Brand        `json:"brand"`
	Card   *card.Summary     `json:"card,omitempty"`
	Fields []card.FieldError `json:"fields,omitempty"`
}

type CheckoutRequest struct {
	Method      string          `json:"method"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	OrderID     string          `json:"order_id"`
	Txid        string          `json:"txid"`
	Description string          `json:"description"`
	Card        card.Input      `json:"card"`
}

type CheckoutResponse struct {
	OrderID string          `json:"order_id"`
	Method  payment.Method  `json:"method"`
	Total   string          `json:"total"`
	Card    *card.Summary   `json:"card,omitempty"`
	Pix     *ChargeResponse `json:"pix,omitempty"`
}

// HandleValidateCard reports the outcome for every card field. Rejections
// answer 422 with the same body shape as acceptances.
func (h *Handler) HandleValidateCard(w http.ResponseWriter, r *http.Request) {
	var in card.Input
	if !decodeJSON(w, r, &in) {
		return
	}

	resp := CardValidationResponse{Brand: card.DetectBrand(in.Number)}
	c, err := h.cards.Validate(in)
	if err != nil {
		var verr card.ValidationError
		if !errors.As(err, &verr) {
			h.fail(w, r, err)
			return
		}
		resp.Fields = verr
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	summary := c.Summary()
	resp.Valid = true
	resp.Card = &summary
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	method, err := payment.ParseMethod(req.Method)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp, err := h.checkoutUC.Execute(r.Context(), checkout.Request{
		Method:      method,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		OrderID:     req.OrderID,
		ReferenceID: req.Txid,
		Description: req.Description,
		Card:        req.Card,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := CheckoutResponse{
		OrderID: resp.OrderID,
		Method:  resp.Method,
		Total:   resp.Total,
		Card:    resp.Card,
	}
	if resp.Pix != nil {
		out.Pix = &ChargeResponse{
			Payload:       resp.Pix.Payload,
			Amount:        resp.Pix.Amount,
			Txid:          resp.Pix.ReferenceID,
			OrderID:       resp.Pix.OrderID,
			ExpiresAt:     resp.Pix.ExpiresAt,
			PaidNoticeURL: resp.Pix.PaidNoticeURL,
		}
	}

	h.logger.Info("checkout prepared", "order_id", resp.OrderID, "method", resp.Method, "total", resp.Total)
	writeJSON(w, http.StatusOK, out)
}
