package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpdelivery "github.com/vitrine/checkout-gateway/internal/delivery/http"
	"github.com/vitrine/checkout-gateway/internal/domain/card"
	"github.com/vitrine/checkout-gateway/internal/domain/pix"
	"github.com/vitrine/checkout-gateway/internal/infrastructure/memory"
	"github.com/vitrine/checkout-gateway/internal/infrastructure/qrgenerator"
	"github.com/vitrine/checkout-gateway/internal/usecase/checkout"
	"github.com/vitrine/checkout-gateway/internal/usecase/generateqr"
	"github.com/vitrine/checkout-gateway/internal/usecase/pixsettings"
)

const samplePayload = "00020126380014br.gov.bcb.pix0116loja@example.com" +
	"520400005303986540510.505802BR5906COMPRA6011JOAO PESSOA62070503ABC63047737"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := memory.NewSettingsRepo(nil)
	cards := card.NewValidator(func() time.Time { return time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC) })
	generateQRUC := generateqr.NewUseCase(repo, pix.NewBuilder("", ""), qrgenerator.NewGenerator(128), 30*time.Minute)

	handler := httpdelivery.NewHandler(
		pixsettings.NewUseCase(repo),
		generateQRUC,
		checkout.NewUseCase(cards, generateQRUC),
		cards,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	srv := httptest.NewServer(httpdelivery.NewRouter(handler, []string{"http://localhost:3000"}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var r io.Reader
	if s, ok := body.(string); ok {
		r = strings.NewReader(s)
	} else if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func configureKey(t *testing.T, srv *httptest.Server) {
	t.Helper()
	resp := do(t, http.MethodPut, srv.URL+"/api/admin/settings/pix", map[string]string{"pix_key": " loja@example.com "})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, resp)["status"])
}

func TestPixCharge_WithoutKey(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/pix?amount=10.50", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "pix key not configured", decode(t, resp)["error"])

	resp = do(t, http.MethodGet, srv.URL+"/api/settings/public", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, false, body["pix_key_configured"])
	assert.Equal(t, "ABC", body["txid_default"])
}

func TestPixCharge_AfterConfiguringKey(t *testing.T) {
	srv := newServer(t)
	configureKey(t, srv)

	resp := do(t, http.MethodGet, srv.URL+"/api/pix?amount=10.5&order_id=ord-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, samplePayload, body["payload"])
	assert.Equal(t, "10.50", body["amount"])
	assert.Equal(t, "ABC", body["txid"])
	assert.Equal(t, "ord-1", body["order_id"])
	assert.NotContains(t, body, "paid_notice_url")

	resp = do(t, http.MethodGet, srv.URL+"/api/admin/settings/pix", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "loja@example.com", decode(t, resp)["pix_key"])
}

func TestPixCharge_BadQuery(t *testing.T) {
	srv := newServer(t)
	configureKey(t, srv)

	for _, query := range []string{"", "?amount=abc", "?amount=-1", "?amount=1&quantity=x"} {
		resp := do(t, http.MethodGet, srv.URL+"/api/pix"+query, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}
}

func TestPixQR_ReturnsPNG(t *testing.T) {
	srv := newServer(t)
	configureKey(t, srv)

	resp := do(t, http.MethodGet, srv.URL+"/api/pix/qr.png?amount=10.50", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG\r\n\x1a\n")))
}

func TestPutPixSettings_Rejects(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPut, srv.URL+"/api/admin/settings/pix", map[string]string{"pix_key": "k", "txid_default": "PED-1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/api/admin/settings/pix", "{")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid json", decode(t, resp)["error"])
}

func TestValidateCard(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/cards/validate", card.Input{
		Number: "4111 1111 1111 1111", HolderName: "Ana Lima", Expiry: "12/30", CVV: "123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "visa", body["brand"])
	assert.Equal(t, "1111", body["card"].(map[string]any)["last4"])

	resp = do(t, http.MethodPost, srv.URL+"/api/cards/validate", card.Input{
		Number: "371449635398431", HolderName: "Ana Lima", Expiry: "01/26", CVV: "123",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body = decode(t, resp)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, "amex", body["brand"])

	codes := map[string]string{}
	for _, f := range body["fields"].([]any) {
		fe := f.(map[string]any)
		codes[fe["field"].(string)] = fe["code"].(string)
	}
	assert.Equal(t, map[string]string{"expiry": "expired", "cvv": "invalid_cvv"}, codes)
}

func TestCheckout_Pix(t *testing.T) {
	srv := newServer(t)
	configureKey(t, srv)

	resp := do(t, http.MethodPost, srv.URL+"/api/checkout", map[string]any{
		"method":     "pix",
		"unit_price": "5.25",
		"quantity":   2,
		"order_id":   "ord-9",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "ord-9", body["order_id"])
	assert.Equal(t, "10.50", body["total"])
	assert.Equal(t, samplePayload, body["pix"].(map[string]any)["payload"])
}

func TestCheckout_CardRejected(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/checkout", map[string]any{
		"method":     "card",
		"unit_price": "10",
		"card":       card.Input{Number: "4111111111111112", HolderName: "Ana", Expiry: "12/30", CVV: "123"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "invalid card", body["error"])
	assert.Len(t, body["fields"], 1)
}

func TestCheckout_UnknownMethod(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/checkout", map[string]any{"method": "boleto", "unit_price": "1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
