package generateqr

//go:generate mockgen -source=../../domain/settings/settings.go -destination=../mocks/settings.go -package=mocks
//go:generate mockgen -source=../../domain/qrcode/qrcode.go -destination=../mocks/qrcode.go -package=mocks

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitrine/checkout-gateway/internal/domain/pix"
	"github.com/vitrine/checkout-gateway/internal/domain/qrcode"
	"github.com/vitrine/checkout-gateway/internal/domain/settings"
)

const paidGreeting = "Olá! Já realizei o pagamento via PIX e vou enviar o comprovante."

type Request struct {
	Amount      decimal.Decimal
	ReferenceID string
	OrderID     string
	Description string
	Quantity    int
	StartedAt   time.Time
}

type Response struct {
	Payload       string
	Amount        string
	ReferenceID   string
	OrderID       string
	ExpiresAt     time.Time
	PaidNoticeURL string
}

func (r *Response) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type UseCase struct {
	settings settings.Repository
	builder  *pix.Builder
	renderer qrcode.Renderer
	window   time.Duration
	now      func() time.Time
}

func NewUseCase(repo settings.Repository, builder *pix.Builder, renderer qrcode.Renderer, window time.Duration) *UseCase {
	return &UseCase{
		settings: repo,
		builder:  builder,
		renderer: renderer,
		window:   window,
		now:      time.Now,
	}
}

// Execute builds the Pix charge for req. It fails with
// pix.ErrMissingInstrumentKey while the merchant has no key configured.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	cfg, err := uc.currentSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.HasPixKey() {
		return nil, pix.ErrMissingInstrumentKey
	}

	amount, err := pix.FormatAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	referenceID := cfg.ReferenceID(req.ReferenceID)

	payload, err := uc.builder.Build(pix.Request{
		InstrumentKey: cfg.PixKey(),
		Amount:        amount,
		ReferenceID:   referenceID,
	})
	if err != nil {
		return nil, err
	}

	startedAt := req.StartedAt
	if startedAt.IsZero() {
		startedAt = uc.now()
	}

	return &Response{
		Payload:       payload,
		Amount:        amount,
		ReferenceID:   referenceID,
		OrderID:       req.OrderID,
		ExpiresAt:     startedAt.Add(uc.window),
		PaidNoticeURL: paidNoticeURL(cfg.WhatsappNumber(), req, amount, referenceID),
	}, nil
}

// RenderQR builds the charge for req and renders its payload as a PNG.
func (uc *UseCase) RenderQR(ctx context.Context, req Request) ([]byte, error) {
	resp, err := uc.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Render(resp.Payload)
}

func (uc *UseCase) currentSettings(ctx context.Context) (*settings.Settings, error) {
	cfg, err := uc.settings.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, settings.ErrNotFound) {
		return settings.Default(), nil
	}
	return nil, err
}

// paidNoticeURL links to a WhatsApp chat with the merchant, prefilled with
// the charge details. Empty when no number is configured.
func paidNoticeURL(whatsapp string, req Request, amount, referenceID string) string {
	if whatsapp == "" {
		return ""
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	lines := []string{paidGreeting}
	if req.OrderID != "" {
		lines = append(lines, "Pedido: "+req.OrderID)
	}
	if req.Description != "" {
		lines = append(lines, "Produto: "+req.Description)
	}
	lines = append(lines,
		"Quantidade: "+strconv.Itoa(quantity),
		"Valor: "+formatBRL(amount),
		"TXID: "+referenceID,
	)

	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + whatsapp,
		RawQuery: url.Values{"text": {strings.Join(lines, "\n")}}.Encode(),
	}
	return u.String()
}

// formatBRL renders a two-decimal amount as Brazilian currency, e.g. "R$ 1.234,50".
func formatBRL(amount string) string {
	intPart, frac, _ := strings.Cut(amount, ".")

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	return "R$ " + sb.String() + "," + frac
}
