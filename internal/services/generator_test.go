package services

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/metajournal/reward-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedDrawDistribution(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	generator := NewRewardGenerator(clock, rand.New(rand.NewSource(42)))

	const draws = 100000
	counts := make(map[models.RewardType]int)
	for i := 0; i < draws; i++ {
		counts[generator.drawType()]++
	}

	assert.InDelta(t, 0.60, float64(counts[models.RewardBasic])/draws, 0.01)
	assert.InDelta(t, 0.25, float64(counts[models.RewardSilver])/draws, 0.01)
	assert.InDelta(t, 0.10, float64(counts[models.RewardGold])/draws, 0.01)
	assert.InDelta(t, 0.05, float64(counts[models.RewardSpecial])/draws, 0.01)
	assert.Zero(t, counts[models.RewardMilestone], "milestone must never be drawn")
}

func TestDrawValueRanges(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	generator := NewRewardGenerator(clock, rand.New(rand.NewSource(7)))

	ranges := map[models.RewardType][2]int{
		models.RewardBasic:   {5, 15},
		models.RewardSilver:  {20, 40},
		models.RewardGold:    {50, 100},
		models.RewardSpecial: {150, 300},
	}

	for rewardType, bounds := range ranges {
		for i := 0; i < 1000; i++ {
			value := generator.drawValue(rewardType)
			assert.GreaterOrEqual(t, value, bounds[0])
			assert.LessOrEqual(t, value, bounds[1])
		}
	}

	assert.Equal(t, 500, generator.drawValue(models.RewardMilestone))
}

func TestGenerateRewardFields(t *testing.T) {
	earned := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(earned)
	generator := NewRewardGenerator(clock, rand.New(rand.NewSource(1)))

	reward := generator.GenerateReward(models.ActionMetaReflection)

	require.NotEmpty(t, reward.ID)
	assert.Equal(t, earned, reward.DateEarned)
	require.NotNil(t, reward.ExpiryDate)
	assert.Equal(t, earned.Add(30*24*time.Hour), *reward.ExpiryDate)
	assert.Equal(t, models.ActionMetaReflection, reward.AssociatedAction)
	assert.NotEqual(t, models.RewardMilestone, reward.Type)
	assert.Contains(t, reward.Description, "points.")
	assert.True(t, strings.Contains(reward.Name, " "), "name should combine flavor and noun")

	other := generator.GenerateReward(models.ActionMetaReflection)
	assert.NotEqual(t, reward.ID, other.ID)
}

func TestGenerateRewardDescriptionSuffix(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	generator := NewRewardGenerator(clock, &scriptedRand{floats: []float64{0.0}})

	reward := generator.GenerateReward(models.ActionCompletedJournalEntry)
	assert.Equal(t, models.RewardBasic, reward.Type)
	assert.True(t, strings.HasSuffix(reward.Description, "Worth 5 points."), reward.Description)
}

func TestComposeNameFallsBackForUnknownAction(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	generator := NewRewardGenerator(clock, &scriptedRand{})

	name := generator.composeName(models.UserAction("somethingNew"), models.RewardBasic)
	assert.Equal(t, "Explorer's Token", name)
}

func TestDrawTypeNearUpperEdge(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	// A draw just below 1.0 lands in the last bucket rather than falling
	// through the loop.
	generator := NewRewardGenerator(clock, &scriptedRand{floats: []float64{0.9999999}})
	assert.Equal(t, models.RewardSpecial, generator.drawType())
}
