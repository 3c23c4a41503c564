package service

import (
	"context"
	"errors"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/money"
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidAdsLimit = errors.New("ads limit must be positive")
	ErrUnknownField    = errors.New("unknown ledger field")
)

// Canonical ledger field names accepted by AdjustField, plus the user-facing
// aliases the admin UI exposes.
const (
	FieldPoints            = "points"
	FieldMilestoneAmount   = "milestoneAmount"
	FieldMilestoneReward   = "milestoneReward"
	FieldDestinationAmount = "destinationAmount"
	FieldOngoingMilestone  = "ongoingMilestone"
)

var fieldAliases = map[string]string{
	"bookingValue":    FieldMilestoneAmount,
	"premiumTreasure": FieldMilestoneReward,
	"normalTreasure":  FieldDestinationAmount,
}

// PromotionService owns the admin-driven restriction sub-state and generic
// ledger adjustments. All writes go through the same MutateUser primitive as
// ad-click credits, so they cannot race with concurrent clicks.
type PromotionService struct {
	store Store
}

func NewPromotionService(store Store) *PromotionService {
	return &PromotionService{store: store}
}

// SetRestriction installs a promotion: a quota of adsLimit clicks paying
// commission each, backed by a deposit deducted from the withdrawable balance
// immediately (the balance may go negative, which is the deposit-block
// trigger). Replaces any prior restriction outright; deposits never stack.
// ongoing is the amount promised on quota completion; nil means the deposit.
func (s *PromotionService) SetRestriction(ctx context.Context, userID int64, adsLimit int, deposit, commission money.Amount, ongoing *money.Amount) (*domain.UserAccount, error) {
	if adsLimit <= 0 {
		return nil, ErrInvalidAdsLimit
	}
	if !deposit.IsPositive() || !commission.IsPositive() {
		return nil, ErrInvalidAmount
	}

	return s.store.MutateUser(ctx, userID, func(u *domain.UserAccount) error {
		u.MilestoneAmount = u.MilestoneAmount.Sub(deposit)
		if ongoing != nil {
			u.OngoingMilestone = *ongoing
		} else {
			u.OngoingMilestone = deposit
		}
		u.Restriction = &domain.Restriction{
			AdsLimit:   adsLimit,
			Deposit:    deposit,
			Commission: commission,
		}
		return nil
	})
}

// ClearRestriction removes the restriction sub-state. The deposit is not
// refunded: once applied it is consumed, and compensation is a separate
// explicit admin credit.
func (s *PromotionService) ClearRestriction(ctx context.Context, userID int64) (*domain.UserAccount, error) {
	return s.store.MutateUser(ctx, userID, func(u *domain.UserAccount) error {
		u.Restriction = nil
		return nil
	})
}

// AdjustField applies a generic admin credit to one named ledger field.
// Points are integral and clamped to [0, 100]; monetary fields take a signed
// decimal delta. Unknown names are rejected with no mutation.
func (s *PromotionService) AdjustField(ctx context.Context, userID int64, field string, amount money.Amount) (*domain.UserAccount, error) {
	if canonical, ok := fieldAliases[field]; ok {
		field = canonical
	}

	switch field {
	case FieldPoints, FieldMilestoneAmount, FieldMilestoneReward, FieldDestinationAmount, FieldOngoingMilestone:
	default:
		return nil, ErrUnknownField
	}

	return s.store.MutateUser(ctx, userID, func(u *domain.UserAccount) error {
		switch field {
		case FieldPoints:
			u.Points += int(amount.IntPart())
			u.ClampPoints()
		case FieldMilestoneAmount:
			u.MilestoneAmount = u.MilestoneAmount.Add(amount)
		case FieldMilestoneReward:
			u.MilestoneReward = u.MilestoneReward.Add(amount)
		case FieldDestinationAmount:
			u.DestinationAmount = u.DestinationAmount.Add(amount)
		case FieldOngoingMilestone:
			u.OngoingMilestone = u.OngoingMilestone.Add(amount)
		}
		return nil
	})
}
