package domain

import (
	"time"

	"adclick_webapp/internal/money"
)

// UserStatus gates whether a user may click ads at all.
type UserStatus string

const (
	StatusActive  UserStatus = "active"
	StatusPending UserStatus = "pending"
	StatusFrozen  UserStatus = "frozen"
)

// Restriction is the admin-configured promotion sub-state: a deposit-backed,
// capped ad-click quota with its own per-click commission. The four fields live
// and die together, so they are one optional struct rather than four nullable
// columns.
type Restriction struct {
	AdsLimit     int          `json:"ads_limit"`
	Deposit      money.Amount `json:"deposit"`
	Commission   money.Amount `json:"commission"`
	AdsCompleted int          `json:"ads_completed"`
}

// Complete reports whether the quota has been fully worked off.
func (r *Restriction) Complete() bool {
	return r.AdsCompleted >= r.AdsLimit
}

// DepositOnFile reports whether the restriction still counts as an unconsumed
// deposit. Once the quota completes the deposit is spent and no longer shields
// a negative balance.
func (r *Restriction) DepositOnFile() bool {
	return !r.Complete()
}

// UserAccount is the authoritative per-user ledger record.
type UserAccount struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash []byte     `json:"-"`
	Status       UserStatus `json:"status"`

	// Ledger fields. All monetary amounts are 2-dp fixed point and are stored
	// as strings, never floats.
	DestinationAmount money.Amount `json:"destination_amount"`
	MilestoneAmount   money.Amount `json:"milestone_amount"`
	MilestoneReward   money.Amount `json:"milestone_reward"`
	OngoingMilestone  money.Amount `json:"ongoing_milestone"`
	TotalAdsCompleted int64        `json:"total_ads_completed"`
	Points            int          `json:"points"`

	Restriction *Restriction `json:"restriction,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// MaxPoints is the hard cap on the loyalty score.
const MaxPoints = 100

// DepositBlocked reports whether ad clicking is locked pending a new deposit:
// the withdrawable balance is negative and no unconsumed deposit is on file.
func (u *UserAccount) DepositBlocked() bool {
	if !u.MilestoneAmount.IsNegative() {
		return false
	}
	return u.Restriction == nil || !u.Restriction.DepositOnFile()
}

// ClampPoints forces the points value back into [0, MaxPoints].
func (u *UserAccount) ClampPoints() {
	if u.Points < 0 {
		u.Points = 0
	}
	if u.Points > MaxPoints {
		u.Points = MaxPoints
	}
}
