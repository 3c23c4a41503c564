package repository

import (
	"context"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/money"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository stores platform-wide settings in a single row seeded by
// the migrations. Currently only the instant bonus configuration lives here.
type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetBonus returns the instant bonus configuration.
func (r *SettingsRepository) GetBonus(ctx context.Context) (*domain.BonusConfig, error) {
	var (
		cfg    domain.BonusConfig
		amount string
	)
	err := r.db.QueryRow(ctx, `
		SELECT bonus_ads_count, bonus_amount, bonus_banner_url
		FROM settings WHERE id = 1
	`).Scan(&cfg.AdsCount, &amount, &cfg.BannerURL)
	if err != nil {
		return nil, err
	}
	if cfg.Amount, err = money.Parse(amount); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateBonus replaces the instant bonus configuration.
func (r *SettingsRepository) UpdateBonus(ctx context.Context, cfg *domain.BonusConfig) error {
	_, err := r.db.Exec(ctx, `
		UPDATE settings
		SET bonus_ads_count = $1, bonus_amount = $2, bonus_banner_url = $3
		WHERE id = 1
	`, cfg.AdsCount, cfg.Amount.String(), cfg.BannerURL)
	return err
}
