package memory

import (
	"context"
	"sync"

	"github.com/vitrine/checkout-gateway/internal/domain/settings"
)

// SettingsRepo keeps Pix settings in process memory. It backs the gateway
// when no database is configured.
type SettingsRepo struct {
	mu      sync.RWMutex
	current *settings.Settings
}

func NewSettingsRepo(seed *settings.Settings) *SettingsRepo {
	return &SettingsRepo{current: seed}
}

func (r *SettingsRepo) Get(_ context.Context) (*settings.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil, settings.ErrNotFound
	}
	return r.current, nil
}

func (r *SettingsRepo) Save(_ context.Context, s *settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = s
	return nil
}
