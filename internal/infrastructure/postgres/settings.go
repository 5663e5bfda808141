package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitrine/checkout-gateway/internal/domain/settings"
)

// The table holds a single row keyed by settingsRowID.
const settingsRowID = 1

const schema = `
CREATE TABLE IF NOT EXISTS pix_settings (
	id              SMALLINT PRIMARY KEY,
	pix_key         TEXT NOT NULL DEFAULT '',
	txid_default    TEXT NOT NULL DEFAULT 'ABC',
	whatsapp_number TEXT NOT NULL DEFAULT '',
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

func (r *SettingsRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

func (r *SettingsRepo) Get(ctx context.Context) (*settings.Settings, error) {
	var (
		pixKey, txid, whatsapp string
		updatedAt              time.Time
	)
	err := r.pool.QueryRow(ctx,
		`SELECT pix_key, txid_default, whatsapp_number, updated_at FROM pix_settings WHERE id = $1`,
		settingsRowID,
	).Scan(&pixKey, &txid, &whatsapp, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, settings.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return settings.Reconstruct(pixKey, txid, whatsapp, updatedAt), nil
}

func (r *SettingsRepo) Save(ctx context.Context, s *settings.Settings) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO pix_settings (id, pix_key, txid_default, whatsapp_number, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
			pix_key = EXCLUDED.pix_key,
			txid_default = EXCLUDED.txid_default,
			whatsapp_number = EXCLUDED.whatsapp_number,
			updated_at = EXCLUDED.updated_at`,
		settingsRowID, s.PixKey(), s.TxidDefault(), s.WhatsappNumber(), s.UpdatedAt(),
	)
	return err
}
