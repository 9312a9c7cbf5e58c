package models

import (
	"time"
)

// RewardType is the rarity tier of a reward. Milestone rewards are only
// created by the progression tracker, never by the weighted draw.
type RewardType string

const (
	RewardBasic     RewardType = "basic"
	RewardSilver    RewardType = "silver"
	RewardGold      RewardType = "gold"
	RewardSpecial   RewardType = "special"
	RewardMilestone RewardType = "milestone"
)

// RewardExpiryWindow is how long a non-milestone reward stays redeemable.
const RewardExpiryWindow = 30 * 24 * time.Hour

// Reward represents an earned prize. Rewards are immutable after creation
// and leave the earned collection only through redemption.
type Reward struct {
	ID               string     `bson:"id" json:"id"`
	Type             RewardType `bson:"type" json:"type"`
	Value            int        `bson:"value" json:"value"`
	Name             string     `bson:"name" json:"name"`
	Description      string     `bson:"description" json:"description"`
	DateEarned       time.Time  `bson:"date_earned" json:"date_earned"`
	ExpiryDate       *time.Time `bson:"expiry_date,omitempty" json:"expiry_date,omitempty"`
	AssociatedAction UserAction `bson:"associated_action" json:"associated_action"`
}

// IsExpired reports whether the reward is past its expiry date.
// Milestone rewards carry no expiry date and never expire.
func (r Reward) IsExpired(now time.Time) bool {
	return r.ExpiryDate != nil && now.After(*r.ExpiryDate)
}
