package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/metajournal/reward-engine/internal/models"
)

const (
	// baseLevelThreshold is the points needed to go from level 1 to 2.
	baseLevelThreshold = 100.0
	// levelGrowthFactor inflates each successive threshold by 20%.
	levelGrowthFactor = 1.2
	// levelUpRewardPerLevel scales the level-up milestone value.
	levelUpRewardPerLevel = 100
	// streakRewardPerDay scales the streak milestone value.
	streakRewardPerDay = 10
)

// streakMilestones are the streak lengths that earn a milestone reward.
var streakMilestones = map[int]bool{
	3: true, 7: true, 14: true, 30: true,
	60: true, 90: true, 180: true, 365: true,
}

// ProgressionTracker derives level and streak state and emits milestone
// rewards when either crosses a checkpoint.
type ProgressionTracker struct {
	clock Clock
}

// NewProgressionTracker creates a tracker with an injected clock.
func NewProgressionTracker(clock Clock) *ProgressionTracker {
	return &ProgressionTracker{clock: clock}
}

// LevelForPoints computes the level reached at a cumulative point total.
// Thresholds start at 100 and grow geometrically by 20% per level.
func LevelForPoints(totalPoints int) int {
	level := 1
	consumed := 0.0
	threshold := baseLevelThreshold
	for consumed+threshold <= float64(totalPoints) {
		consumed += threshold
		threshold *= levelGrowthFactor
		level++
	}
	return level
}

// UpdateLevel recomputes the level from the point total. When the level
// rises, a single non-expiring milestone reward is emitted even if several
// thresholds were crossed in one jump.
func (t *ProgressionTracker) UpdateLevel(totalPoints, currentLevel int) (int, *models.Reward) {
	newLevel := LevelForPoints(totalPoints)
	if newLevel <= currentLevel {
		return currentLevel, nil
	}

	reward := models.Reward{
		ID:               uuid.NewString(),
		Type:             models.RewardMilestone,
		Value:            newLevel * levelUpRewardPerLevel,
		Name:             fmt.Sprintf("Level %d Achievement", newLevel),
		Description:      fmt.Sprintf("You reached level %d. Worth %d points.", newLevel, newLevel*levelUpRewardPerLevel),
		DateEarned:       t.clock.Now(),
		ExpiryDate:       nil,
		AssociatedAction: models.ActionLevelUp,
	}
	return newLevel, &reward
}

// UpdateStreak advances the calendar streak in place. A second action on the
// same day refreshes the streak date without double-counting; a one-day gap
// extends the streak; anything longer resets it to 1. Landing on a milestone
// length emits a non-expiring reward, including when a reset streak regrows
// to the same length.
func (t *ProgressionTracker) UpdateStreak(state *models.ProgressionState) *models.Reward {
	now := t.clock.Now()

	sameDay := false
	if state.LastStreakDate != nil {
		switch daysBetween(*state.LastStreakDate, now) {
		case 0:
			sameDay = true
		case 1:
			state.StreakDays++
		default:
			state.StreakDays = 1
		}
	} else {
		state.StreakDays = 1
	}
	state.LastStreakDate = &now

	if sameDay || !streakMilestones[state.StreakDays] {
		return nil
	}

	reward := models.Reward{
		ID:               uuid.NewString(),
		Type:             models.RewardMilestone,
		Value:            state.StreakDays * streakRewardPerDay,
		Name:             fmt.Sprintf("%d-Day Streak Achievement", state.StreakDays),
		Description:      fmt.Sprintf("You kept your streak alive for %d days. Worth %d points.", state.StreakDays, state.StreakDays*streakRewardPerDay),
		DateEarned:       now,
		ExpiryDate:       nil,
		AssociatedAction: models.ActionStreak,
	}
	return &reward
}

// daysBetween counts whole calendar days between two local timestamps.
// Anchoring both dates at UTC midnight keeps the count exact across DST.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
