package http //nolint:revive // directory-based package name, imported with alias

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitrine/checkout-gateway/internal/domain/settings"
	"github.com/vitrine/checkout-gateway/internal/usecase/generateqr"
	"github.com/vitrine/checkout-gateway/internal/usecase/pixsettings"
)

type SettingsRequest struct {
	PixKey         string `json:"pix_key"`
	TxidDefault    string `json:"txid_default"`
	WhatsappNumber string `json:"whatsapp_number"`
}

type SettingsResponse struct {
	PixKey         string     `json:"pix_key"`
	TxidDefault    string     `json:"txid_default"`
	WhatsappNumber string     `json:"whatsapp_number"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type PublicSettingsResponse struct {
	PixKeyConfigured bool   `json:"pix_key_configured"`
	TxidDefault      string `json:"txid_default"`
	WhatsappNumber   string `json:"whatsapp_number,omitempty"`
}

type ChargeResponse struct {
	Payload       string    `json:"payload"`
	Amount        string    `json:"amount"`
	Txid          string    `json:"txid"`
	OrderID       string    `json:"order_id,omitempty"`
	ExpiresAt     time.Time `json:"expires_at"`
	PaidNoticeURL string    `json:"paid_notice_url,omitempty"`
}

func (h *Handler) HandlePublicSettings(w http.ResponseWriter, r *http.Request) {
	pub, err := h.settingsUC.Public(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PublicSettingsResponse{
		PixKeyConfigured: pub.PixKeyConfigured,
		TxidDefault:      pub.TxidDefault,
		WhatsappNumber:   pub.WhatsappNumber,
	})
}

func (h *Handler) HandleGetPixSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settingsUC.Get(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

func (h *Handler) HandlePutPixSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.settingsUC.Update(r.Context(), pixsettings.Request{
		PixKey:         req.PixKey,
		TxidDefault:    req.TxidDefault,
		WhatsappNumber: req.WhatsappNumber,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("pix settings updated", "pix_key_configured", s.HasPixKey(), "txid_default", s.TxidDefault())
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

func (h *Handler) HandlePixCharge(w http.ResponseWriter, r *http.Request) {
	req, ok := chargeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.generateQRUC.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ChargeResponse{
		Payload:       resp.Payload,
		Amount:        resp.Amount,
		Txid:          resp.ReferenceID,
		OrderID:       resp.OrderID,
		ExpiresAt:     resp.ExpiresAt,
		PaidNoticeURL: resp.PaidNoticeURL,
	})
}

func (h *Handler) HandlePixQR(w http.ResponseWriter, r *http.Request) {
	req, ok := chargeRequest(w, r)
	if !ok {
		return
	}

	png, err := h.generateQRUC.RenderQR(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

// chargeRequest reads amount, txid, order_id, description and quantity from
// the query string.
func chargeRequest(w http.ResponseWriter, r *http.Request) (generateqr.Request, bool) {
	q := r.URL.Query()

	amountStr := q.Get("amount")
	if amountStr == "" {
		writeError(w, http.StatusBadRequest, "amount query param required")
		return generateqr.Request{}, false
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return generateqr.Request{}, false
	}

	var quantity int
	if raw := q.Get("quantity"); raw != "" {
		if quantity, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid quantity")
			return generateqr.Request{}, false
		}
	}

	return generateqr.Request{
		Amount:      amount,
		ReferenceID: q.Get("txid"),
		OrderID:     q.Get("order_id"),
		Description: q.Get("description"),
		Quantity:    quantity,
	}, true
}

func toSettingsResponse(s *settings.Settings) SettingsResponse {
	resp := SettingsResponse{
		PixKey:         s.PixKey(),
		TxidDefault:    s.TxidDefault(),
		WhatsappNumber: s.WhatsappNumber(),
	}
	if t := s.UpdatedAt(); !t.IsZero() {
		resp.UpdatedAt = &t
	}
	return resp
}
