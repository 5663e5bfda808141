package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vitrine/checkout-gateway/internal/domain/card"
	"github.com/vitrine/checkout-gateway/internal/domain/pix"
)

var (
	ErrNotFound = errors.New("settings not found")
	ErrInvalid  = errors.New("invalid pix settings")
)

var validate = validator.New()

type fields struct {
	TxidDefault    string `validate:"omitempty,alphanum,max=25"`
	WhatsappNumber string `validate:"omitempty,number,min=10,max=13"`
}

// Settings is the merchant's Pix configuration managed from the admin console.
type Settings struct {
	pixKey         string
	txidDefault    string
	whatsappNumber string
	updatedAt      time.Time
}

// New normalizes and validates admin input. The WhatsApp number keeps only
// its digits; an empty txid default falls back to the payload placeholder.
func New(pixKey, txidDefault, whatsappNumber string) (*Settings, error) {
	s := &Settings{
		pixKey:         strings.TrimSpace(pixKey),
		txidDefault:    strings.TrimSpace(txidDefault),
		whatsappNumber: card.OnlyDigits(whatsappNumber),
		updatedAt:      time.Now(),
	}
	if s.txidDefault == "" {
		s.txidDefault = pix.DefaultReferenceID
	}
	if len(s.pixKey) > pix.MaxInstrumentKeyLength {
		return nil, fmt.Errorf("%w: pix key exceeds %d bytes", ErrInvalid, pix.MaxInstrumentKeyLength)
	}
	if err := validate.Struct(fields{TxidDefault: s.txidDefault, WhatsappNumber: s.whatsappNumber}); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}
	return s, nil
}

func Default() *Settings {
	return &Settings{txidDefault: pix.DefaultReferenceID}
}

func Reconstruct(pixKey, txidDefault, whatsappNumber string, updatedAt time.Time) *Settings {
	return &Settings{
		pixKey:         pixKey,
		txidDefault:    txidDefault,
		whatsappNumber: whatsappNumber,
		updatedAt:      updatedAt,
	}
}

func (s *Settings) PixKey() string {
	return s.pixKey
}

func (s *Settings) TxidDefault() string {
	return s.txidDefault
}

func (s *Settings) WhatsappNumber() string {
	return s.whatsappNumber
}

func (s *Settings) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *Settings) HasPixKey() bool {
	return s.pixKey != ""
}

// ReferenceID picks the reference id for a charge: the buyer's value, then
// the configured default, then the payload placeholder.
func (s *Settings) ReferenceID(requested string) string {
	if v := strings.TrimSpace(requested); v != "" {
		return v
	}
	if s.txidDefault != "" {
		return s.txidDefault
	}
	return pix.DefaultReferenceID
}

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, ", ")
}
