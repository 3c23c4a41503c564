package service

import (
	"context"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence contract the ledger and promotion services run on.
// MutateUser is the single linearization point for all per-user ledger writes:
// the callback sees a consistent snapshot and its changes land atomically.
type Store interface {
	GetUser(ctx context.Context, id int64) (*domain.UserAccount, error)
	MutateUser(ctx context.Context, id int64, fn func(*domain.UserAccount) error) (*domain.UserAccount, error)
	GetAd(ctx context.Context, id int64) (*domain.Ad, error)
	ListActiveAds(ctx context.Context) ([]domain.Ad, error)
	GetBonus(ctx context.Context) (*domain.BonusConfig, error)
}

// pgStore adapts the pgx repositories to the Store contract.
type pgStore struct {
	users    *repository.UserRepository
	ads      *repository.AdRepository
	settings *repository.SettingsRepository
}

// NewStore builds the production Store over a pgx pool.
func NewStore(db *pgxpool.Pool) Store {
	return &pgStore{
		users:    repository.NewUserRepository(db),
		ads:      repository.NewAdRepository(db),
		settings: repository.NewSettingsRepository(db),
	}
}

func (s *pgStore) GetUser(ctx context.Context, id int64) (*domain.UserAccount, error) {
	return s.users.GetByID(ctx, id)
}

func (s *pgStore) MutateUser(ctx context.Context, id int64, fn func(*domain.UserAccount) error) (*domain.UserAccount, error) {
	return s.users.Mutate(ctx, id, fn)
}

func (s *pgStore) GetAd(ctx context.Context, id int64) (*domain.Ad, error) {
	return s.ads.GetByID(ctx, id)
}

func (s *pgStore) ListActiveAds(ctx context.Context) ([]domain.Ad, error) {
	return s.ads.ListActive(ctx)
}

func (s *pgStore) GetBonus(ctx context.Context) (*domain.BonusConfig, error) {
	return s.settings.GetBonus(ctx)
}
