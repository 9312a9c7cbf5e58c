package models

import "fmt"

// UserAction identifies an instrumented event in the journaling app.
// The streak and levelUp actions are synthetic: they only ever appear as the
// associated action of progression rewards and are never recorded directly.
type UserAction string

const (
	ActionCompletedJournalEntry UserAction = "completedJournalEntry"
	ActionGeneratedStoryChapter UserAction = "generatedStoryChapter"
	ActionCompletedBodyScan     UserAction = "completedBodyScan"
	ActionMetaReflection        UserAction = "metaReflection"

	ActionStreak  UserAction = "streak"
	ActionLevelUp UserAction = "levelUp"
)

// ActionParams are the static scheduling parameters of an action.
type ActionParams struct {
	BasePoints           int
	AffectsStreak        bool
	FixedRewardInterval  int
	VariableRewardChance float64
}

var actionParams = map[UserAction]ActionParams{
	ActionCompletedJournalEntry: {BasePoints: 10, AffectsStreak: true, FixedRewardInterval: 3, VariableRewardChance: 0.30},
	ActionGeneratedStoryChapter: {BasePoints: 15, AffectsStreak: false, FixedRewardInterval: 5, VariableRewardChance: 0.25},
	ActionCompletedBodyScan:     {BasePoints: 8, AffectsStreak: true, FixedRewardInterval: 4, VariableRewardChance: 0.20},
	ActionMetaReflection:        {BasePoints: 12, AffectsStreak: true, FixedRewardInterval: 3, VariableRewardChance: 0.35},
}

// RecordableActions lists the actions external callers may record, in a
// stable order.
var RecordableActions = []UserAction{
	ActionCompletedJournalEntry,
	ActionGeneratedStoryChapter,
	ActionCompletedBodyScan,
	ActionMetaReflection,
}

// Params returns the static parameters of an action. Synthetic actions carry
// zero base points and are never scheduled.
func (a UserAction) Params() ActionParams {
	return actionParams[a]
}

// IsSynthetic reports whether the action is an internal progression tag.
func (a UserAction) IsSynthetic() bool {
	return a == ActionStreak || a == ActionLevelUp
}

// ParseAction validates a wire-format action name.
func ParseAction(name string) (UserAction, error) {
	action := UserAction(name)
	if _, ok := actionParams[action]; !ok {
		return "", fmt.Errorf("unknown action %q", name)
	}
	return action, nil
}
