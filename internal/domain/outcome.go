package domain

import "adclick_webapp/internal/money"

// OutcomeKind discriminates what a successful ad click produced. Exactly one
// kind is reported per click, so the client always shows exactly one popup.
type OutcomeKind string

const (
	OutcomeEarnings  OutcomeKind = "earnings"
	OutcomeBonus     OutcomeKind = "bonus"
	OutcomeMilestone OutcomeKind = "milestone"
)

// ClickOutcome is the single discriminated result of crediting an ad click.
type ClickOutcome struct {
	Kind OutcomeKind `json:"kind"`

	// Always set: the amount credited for this click.
	Earnings money.Amount `json:"earnings"`

	// Kind == OutcomeBonus
	BonusAdsCount int64        `json:"bonus_ads_count,omitempty"`
	BonusAmount   money.Amount `json:"bonus_amount,omitzero"`

	// Kind == OutcomeMilestone
	MilestoneReward  money.Amount `json:"milestone_reward,omitzero"`
	MilestoneAmount  money.Amount `json:"milestone_amount,omitzero"`
	OngoingMilestone money.Amount `json:"ongoing_milestone,omitzero"`

	BannerURL string `json:"banner_url,omitempty"`
}
