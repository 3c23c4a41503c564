package service

import (
	"context"
	"errors"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/money"
	"adclick_webapp/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
	ErrAdNotFound   = repository.ErrAdNotFound
	ErrAdInactive   = errors.New("ad is not active")
	ErrNoActiveAds  = errors.New("no active ads")
	ErrNotActive    = errors.New("account is not active")
)

// LockedError is returned when a deposit-blocked user attempts a click. It is
// an expected outcome, not a system failure: the client renders a blocking
// modal with the carried amounts.
type LockedError struct {
	MilestoneAmount money.Amount
	MilestoneReward money.Amount
}

func (e *LockedError) Error() string {
	return "deposit required before further ad clicks"
}

// LedgerService owns the reward-crediting rules for ad clicks.
type LedgerService struct {
	store Store
}

func NewLedgerService(store Store) *LedgerService {
	return &LedgerService{store: store}
}

// CurrentAd picks the ad the user should see next: round-robin over the active
// catalog, indexed by the lifetime click count. Returns ErrNoActiveAds when
// the rotation is empty (client shows the "all completed" state).
func (s *LedgerService) CurrentAd(ctx context.Context, userID int64) (*domain.Ad, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ads, err := s.store.ListActiveAds(ctx)
	if err != nil {
		return nil, err
	}
	if len(ads) == 0 {
		return nil, ErrNoActiveAds
	}

	ad := ads[int(u.TotalAdsCompleted%int64(len(ads)))]
	return &ad, nil
}

// CreditAdClick applies the reward for one completed ad view. The whole
// read-modify-write runs inside a single MutateUser call, so a concurrent
// click or admin adjustment for the same user cannot interleave and the
// reward is applied at most once per request.
func (s *LedgerService) CreditAdClick(ctx context.Context, userID, adID int64) (*domain.ClickOutcome, error) {
	ad, err := s.store.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	if !ad.IsActive {
		return nil, ErrAdInactive
	}

	bonus, err := s.store.GetBonus(ctx)
	if err != nil {
		return nil, err
	}

	var outcome *domain.ClickOutcome
	_, err = s.store.MutateUser(ctx, userID, func(u *domain.UserAccount) error {
		if u.Status != domain.StatusActive {
			return ErrNotActive
		}
		if u.DepositBlocked() {
			return &LockedError{
				MilestoneAmount: u.MilestoneAmount,
				MilestoneReward: u.MilestoneReward,
			}
		}

		u.TotalAdsCompleted++

		// Under an unfinished restriction the promotion commission replaces
		// the ad price and counts toward the quota.
		reward := ad.Price
		restricted := false
		if rst := u.Restriction; rst != nil && !rst.Complete() {
			reward = rst.Commission
			rst.AdsCompleted++
			restricted = true
		}
		u.MilestoneAmount = u.MilestoneAmount.Add(reward)

		// Exactly one outcome per click. The locking milestone event takes
		// precedence over the instant bonus so it can never be masked.
		switch {
		case restricted && u.Restriction.Complete():
			u.MilestoneReward = u.MilestoneReward.Add(u.OngoingMilestone)
			outcome = &domain.ClickOutcome{
				Kind:             domain.OutcomeMilestone,
				Earnings:         reward,
				MilestoneReward:  u.MilestoneReward,
				MilestoneAmount:  u.MilestoneAmount,
				OngoingMilestone: u.OngoingMilestone,
				BannerURL:        bonus.BannerURL,
			}
		case bonus.AdsCount > 0 && u.TotalAdsCompleted == bonus.AdsCount:
			u.MilestoneAmount = u.MilestoneAmount.Add(bonus.Amount)
			u.DestinationAmount = u.DestinationAmount.Add(bonus.Amount)
			outcome = &domain.ClickOutcome{
				Kind:          domain.OutcomeBonus,
				Earnings:      reward,
				BonusAdsCount: bonus.AdsCount,
				BonusAmount:   bonus.Amount,
				BannerURL:     bonus.BannerURL,
			}
		default:
			outcome = &domain.ClickOutcome{
				Kind:     domain.OutcomeEarnings,
				Earnings: reward,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}
