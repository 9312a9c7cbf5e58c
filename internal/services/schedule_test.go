package services

import (
	"testing"

	"github.com/metajournal/reward-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFixedSchedulePeriodicity(t *testing.T) {
	scheduler := NewRewardScheduler(FixedSchedule, &scriptedRand{})
	state := models.NewProgressionState(primitive.NewObjectID())

	action := models.ActionCompletedJournalEntry
	interval := action.Params().FixedRewardInterval

	for call := 1; call <= 4*interval; call++ {
		state.CompletionCounts[action]++
		granted := scheduler.ShouldGrantReward(action, state)
		if call%interval == 0 {
			assert.True(t, granted, "call %d should grant", call)
		} else {
			assert.False(t, granted, "call %d should not grant", call)
		}
	}
}

func TestVariableGrantChanceBounds(t *testing.T) {
	for _, action := range models.RecordableActions {
		base := action.Params().VariableRewardChance
		previous := 0.0
		for streak := 0; streak <= 40; streak++ {
			chance := VariableGrantChance(action, streak)
			assert.GreaterOrEqual(t, chance, base)
			assert.LessOrEqual(t, chance, 0.95)
			assert.GreaterOrEqual(t, chance, previous, "chance must not decrease with streak")
			previous = chance
		}
	}
}

func TestVariableGrantChanceBonusCapsAtTenDays(t *testing.T) {
	action := models.ActionCompletedJournalEntry
	base := action.Params().VariableRewardChance

	assert.InDelta(t, base+0.05, VariableGrantChance(action, 5), 1e-9)
	assert.InDelta(t, base+0.10, VariableGrantChance(action, 10), 1e-9)
	assert.InDelta(t, base+0.10, VariableGrantChance(action, 25), 1e-9)
}

func TestVariableScheduleUsesDraw(t *testing.T) {
	state := models.NewProgressionState(primitive.NewObjectID())
	action := models.ActionCompletedJournalEntry

	granting := NewRewardScheduler(VariableSchedule, &scriptedRand{floats: []float64{0.10}})
	assert.True(t, granting.ShouldGrantReward(action, state))

	denying := NewRewardScheduler(VariableSchedule, &scriptedRand{floats: []float64{0.90}})
	assert.False(t, denying.ShouldGrantReward(action, state))
}

func TestSyntheticActionsNeverScheduled(t *testing.T) {
	state := models.NewProgressionState(primitive.NewObjectID())

	for _, policy := range []SchedulePolicy{FixedSchedule, VariableSchedule} {
		scheduler := NewRewardScheduler(policy, &scriptedRand{floats: []float64{0.0}})
		assert.False(t, scheduler.ShouldGrantReward(models.ActionStreak, state))
		assert.False(t, scheduler.ShouldGrantReward(models.ActionLevelUp, state))
	}
}
