package domain

import (
	"time"

	"adclick_webapp/internal/money"
)

// Ad is a sponsored ad in the click rotation. Price is the per-click reward
// outside of any promotion.
type Ad struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Price     money.Amount `json:"price"`
	ImageURL  string       `json:"image_url"`
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
}

// BonusConfig is the admin-configured instant bonus: when a user's lifetime
// click count reaches AdsCount, Amount is credited once, with no locking.
type BonusConfig struct {
	AdsCount  int64        `json:"ads_count"`
	Amount    money.Amount `json:"amount"`
	BannerURL string       `json:"banner_url"`
}
