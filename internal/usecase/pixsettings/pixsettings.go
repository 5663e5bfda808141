package pixsettings

import (
	"context"
	"errors"

	"github.com/vitrine/checkout-gateway/internal/domain/settings"
)

type Request struct {
	PixKey         string
	TxidDefault    string
	WhatsappNumber string
}

// Public is what the storefront may see before checkout.
type Public struct {
	PixKeyConfigured bool
	TxidDefault      string
	WhatsappNumber   string
}

type UseCase struct {
	repo settings.Repository
}

func NewUseCase(repo settings.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Get returns the stored settings, or the defaults when none were saved yet.
func (uc *UseCase) Get(ctx context.Context) (*settings.Settings, error) {
	s, err := uc.repo.Get(ctx)
	if errors.Is(err, settings.ErrNotFound) {
		return settings.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *UseCase) Update(ctx context.Context, req Request) (*settings.Settings, error) {
	s, err := settings.New(req.PixKey, req.TxidDefault, req.WhatsappNumber)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *UseCase) Public(ctx context.Context) (*Public, error) {
	s, err := uc.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &Public{
		PixKeyConfigured: s.HasPixKey(),
		TxidDefault:      s.TxidDefault(),
		WhatsappNumber:   s.WhatsappNumber(),
	}, nil
}
