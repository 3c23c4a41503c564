package service

import (
	"context"
	"sort"
	"sync"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/money"
)

// memStore is an in-memory Store for unit tests. MutateUser serializes on a
// per-store mutex, mirroring the row lock the Postgres store takes, and works
// on a copy so a failed callback leaves the record untouched.
type memStore struct {
	mu    sync.Mutex
	users map[int64]*domain.UserAccount
	ads   map[int64]*domain.Ad
	bonus domain.BonusConfig
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[int64]*domain.UserAccount),
		ads:   make(map[int64]*domain.Ad),
	}
}

func (s *memStore) addUser(u *domain.UserAccount) {
	s.users[u.ID] = u
}

func (s *memStore) addAd(ad *domain.Ad) {
	s.ads[ad.ID] = ad
}

func (s *memStore) GetUser(ctx context.Context, id int64) (*domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := cloneUser(u)
	return cp, nil
}

func (s *memStore) MutateUser(ctx context.Context, id int64, fn func(*domain.UserAccount) error) (*domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	cp := cloneUser(u)
	if err := fn(cp); err != nil {
		return nil, err
	}
	s.users[id] = cp
	return cloneUser(cp), nil
}

func (s *memStore) GetAd(ctx context.Context, id int64) (*domain.Ad, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ad, ok := s.ads[id]
	if !ok {
		return nil, ErrAdNotFound
	}
	cp := *ad
	return &cp, nil
}

func (s *memStore) ListActiveAds(ctx context.Context) ([]domain.Ad, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Ad
	for _, ad := range s.ads {
		if ad.IsActive {
			result = append(result, *ad)
		}
	}
	// ordered by id like the SQL store
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *memStore) GetBonus(ctx context.Context) (*domain.BonusConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.bonus
	return &cp, nil
}

func cloneUser(u *domain.UserAccount) *domain.UserAccount {
	cp := *u
	if u.Restriction != nil {
		rst := *u.Restriction
		cp.Restriction = &rst
	}
	return &cp
}

func adFixture() *domain.Ad {
	return &domain.Ad{ID: 1, Title: "Ad One", Price: money.MustParse("2.50"), IsActive: true}
}

// activeUser builds an active user with the given milestone amount.
func activeUser(id int64, milestoneAmount string) *domain.UserAccount {
	return &domain.UserAccount{
		ID:              id,
		Username:        "user",
		Status:          domain.StatusActive,
		MilestoneAmount: money.MustParse(milestoneAmount),
	}
}
