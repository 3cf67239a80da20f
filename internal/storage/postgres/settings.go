package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
)

var _ menu.SettingsRepository = (*SettingsRepository)(nil)

// SettingsRepository implements menu.SettingsRepository backed by
// PostgreSQL. The site_settings table holds a single row.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a SettingsRepository that uses the given
// pool.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get returns the site branding. A missing row yields the zero settings so
// consumers fall back to their defaults instead of failing.
func (r *SettingsRepository) Get(ctx context.Context) (*menu.SiteSettings, error) {
	var s menu.SiteSettings
	err := r.pool.QueryRow(ctx,
		`SELECT site_name, site_logo, messenger_channel, currency_symbol
		 FROM site_settings WHERE id = 1`).
		Scan(&s.SiteName, &s.SiteLogo, &s.MessengerChannel, &s.CurrencySymbol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &menu.SiteSettings{}, nil
		}
		return nil, fmt.Errorf("getting site settings: %w", err)
	}
	return &s, nil
}
