package services

import (
	"github.com/metajournal/reward-engine/internal/models"
)

// SchedulePolicy selects how reward eligibility is decided. The policy is a
// construction-time choice and does not change at runtime.
type SchedulePolicy string

const (
	// FixedSchedule grants on every Nth completion of an action.
	FixedSchedule SchedulePolicy = "fixed"
	// VariableSchedule grants with a streak-boosted probability.
	VariableSchedule SchedulePolicy = "variable"
)

const (
	// streakBonusPerDay is the probability added per consecutive streak day.
	streakBonusPerDay = 0.01
	// streakBonusCapDays is the streak length past which the bonus stops growing.
	streakBonusCapDays = 10
	// maxGrantChance keeps variable rewards scarce no matter the streak.
	maxGrantChance = 0.95
)

// RewardScheduler decides whether a recorded action earns a reward.
type RewardScheduler struct {
	policy SchedulePolicy
	rng    RandomSource
}

// NewRewardScheduler creates a scheduler with the given policy.
func NewRewardScheduler(policy SchedulePolicy, rng RandomSource) *RewardScheduler {
	return &RewardScheduler{
		policy: policy,
		rng:    rng,
	}
}

// ShouldGrantReward evaluates the active policy against the ledger state.
// The completion count for the action must already include the current call.
func (s *RewardScheduler) ShouldGrantReward(action models.UserAction, state *models.ProgressionState) bool {
	if action.IsSynthetic() {
		return false
	}

	switch s.policy {
	case FixedSchedule:
		interval := action.Params().FixedRewardInterval
		if interval < 1 {
			return false
		}
		return state.CompletionCounts[action]%interval == 0
	case VariableSchedule:
		return s.rng.Float64() < VariableGrantChance(action, state.StreakDays)
	default:
		return false
	}
}

// VariableGrantChance computes the effective grant probability for an action
// given the current streak. The streak bonus caps at +0.10 and the overall
// chance never exceeds 0.95.
func VariableGrantChance(action models.UserAction, streakDays int) float64 {
	bonusDays := streakDays
	if bonusDays > streakBonusCapDays {
		bonusDays = streakBonusCapDays
	}

	chance := action.Params().VariableRewardChance + float64(bonusDays)*streakBonusPerDay
	if chance > maxGrantChance {
		chance = maxGrantChance
	}
	return chance
}
