package services

import (
	"testing"
	"time"

	"github.com/metajournal/reward-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLevelForPoints(t *testing.T) {
	// Thresholds: 100 to reach level 2, 120 more for 3, 144 more for 4.
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{219, 2},
		{220, 3},
		{250, 3},
		{363, 3},
		{364, 4},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForPoints(tc.points), "points=%d", tc.points)
	}
}

func TestUpdateLevelEmitsSingleMilestonePerJump(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	tracker := NewProgressionTracker(clock)

	// 250 points crosses two thresholds (100 and 220) in one jump.
	newLevel, reward := tracker.UpdateLevel(250, 1)
	assert.Equal(t, 3, newLevel)
	require.NotNil(t, reward)
	assert.Equal(t, models.RewardMilestone, reward.Type)
	assert.Equal(t, 300, reward.Value)
	assert.Equal(t, "Level 3 Achievement", reward.Name)
	assert.Nil(t, reward.ExpiryDate)
	assert.Equal(t, models.ActionLevelUp, reward.AssociatedAction)

	// Unchanged points never emit a second reward.
	sameLevel, again := tracker.UpdateLevel(250, newLevel)
	assert.Equal(t, 3, sameLevel)
	assert.Nil(t, again)
}

func TestUpdateLevelIsMonotonic(t *testing.T) {
	clock := newFakeClock(time.Now())
	tracker := NewProgressionTracker(clock)

	level, reward := tracker.UpdateLevel(0, 5)
	assert.Equal(t, 5, level)
	assert.Nil(t, reward)
}

func TestUpdateStreakContinuity(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC))
	tracker := NewProgressionTracker(clock)
	state := models.NewProgressionState(primitive.NewObjectID())

	// First streak-affecting action starts the streak.
	reward := tracker.UpdateStreak(state)
	assert.Equal(t, 1, state.StreakDays)
	assert.Nil(t, reward)
	require.NotNil(t, state.LastStreakDate)

	// A second action the same day refreshes the date without counting.
	clock.advance(30 * time.Minute)
	firstDate := *state.LastStreakDate
	reward = tracker.UpdateStreak(state)
	assert.Equal(t, 1, state.StreakDays)
	assert.Nil(t, reward)
	assert.True(t, state.LastStreakDate.After(firstDate))

	// The next calendar day extends the streak, even across midnight with
	// less than 24 hours elapsed.
	clock.advance(2 * time.Hour)
	reward = tracker.UpdateStreak(state)
	assert.Equal(t, 2, state.StreakDays)
	assert.Nil(t, reward)

	// A gap of two days resets to 1.
	clock.advance(48 * time.Hour)
	reward = tracker.UpdateStreak(state)
	assert.Equal(t, 1, state.StreakDays)
	assert.Nil(t, reward)
}

func TestStreakMilestones(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	tracker := NewProgressionTracker(clock)
	state := models.NewProgressionState(primitive.NewObjectID())

	var milestones []models.Reward
	for day := 1; day <= 7; day++ {
		if reward := tracker.UpdateStreak(state); reward != nil {
			milestones = append(milestones, *reward)
		}
		clock.advance(24 * time.Hour)
	}

	require.Len(t, milestones, 2)
	assert.Equal(t, 30, milestones[0].Value)
	assert.Equal(t, "3-Day Streak Achievement", milestones[0].Name)
	assert.Equal(t, 70, milestones[1].Value)
	assert.Equal(t, "7-Day Streak Achievement", milestones[1].Name)
	for _, m := range milestones {
		assert.Equal(t, models.RewardMilestone, m.Type)
		assert.Nil(t, m.ExpiryDate)
		assert.Equal(t, models.ActionStreak, m.AssociatedAction)
	}
}

func TestStreakMilestoneRetriggersAfterReset(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	tracker := NewProgressionTracker(clock)
	state := models.NewProgressionState(primitive.NewObjectID())

	// Grow to a 3-day streak.
	var first *models.Reward
	for day := 1; day <= 3; day++ {
		first = tracker.UpdateStreak(state)
		clock.advance(24 * time.Hour)
	}
	require.NotNil(t, first)
	assert.Equal(t, 30, first.Value)

	// Break the streak, then regrow to 3. The milestone fires again.
	clock.advance(5 * 24 * time.Hour)
	var second *models.Reward
	for day := 1; day <= 3; day++ {
		second = tracker.UpdateStreak(state)
		clock.advance(24 * time.Hour)
	}
	require.NotNil(t, second)
	assert.Equal(t, 30, second.Value)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0, daysBetween(base, base.Add(30*time.Second)))
	assert.Equal(t, 1, daysBetween(base, base.Add(2*time.Minute)))
	assert.Equal(t, 2, daysBetween(base, base.AddDate(0, 0, 2)))
}
