package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, name := range []string{"completedJournalEntry", "generatedStoryChapter", "completedBodyScan", "metaReflection"} {
		action, err := ParseAction(name)
		require.NoError(t, err)
		assert.Equal(t, UserAction(name), action)
	}

	_, err := ParseAction("somethingElse")
	assert.Error(t, err)

	// Synthetic actions are internal tags, not recordable input.
	_, err = ParseAction("streak")
	assert.Error(t, err)
	_, err = ParseAction("levelUp")
	assert.Error(t, err)
}

func TestActionParams(t *testing.T) {
	for _, action := range RecordableActions {
		params := action.Params()
		assert.Greater(t, params.BasePoints, 0)
		assert.GreaterOrEqual(t, params.FixedRewardInterval, 1)
		assert.GreaterOrEqual(t, params.VariableRewardChance, 0.0)
		assert.LessOrEqual(t, params.VariableRewardChance, 1.0)
	}

	assert.Zero(t, ActionStreak.Params().BasePoints)
	assert.Zero(t, ActionLevelUp.Params().BasePoints)
	assert.True(t, ActionStreak.IsSynthetic())
	assert.True(t, ActionLevelUp.IsSynthetic())
	assert.False(t, ActionCompletedJournalEntry.IsSynthetic())
}

func TestRewardIsExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(30 * 24 * time.Hour)

	reward := Reward{DateEarned: now, ExpiryDate: &expiry}
	assert.False(t, reward.IsExpired(now))
	assert.False(t, reward.IsExpired(expiry))
	assert.True(t, reward.IsExpired(expiry.Add(time.Second)))

	milestone := Reward{DateEarned: now, ExpiryDate: nil}
	assert.False(t, milestone.IsExpired(expiry.Add(1000*time.Hour)))
}
