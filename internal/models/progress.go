package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressionState is the per-user progression document. One record exists
// per user; every mutation rewrites the whole document.
type ProgressionState struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"user_id" json:"user_id"`
	TotalPoints      int                `bson:"total_points" json:"total_points"`
	Level            int                `bson:"level" json:"level"`
	StreakDays       int                `bson:"streak_days" json:"streak_days"`
	LastStreakDate   *time.Time         `bson:"last_streak_date,omitempty" json:"last_streak_date,omitempty"`
	CompletionCounts map[UserAction]int `bson:"completion_counts" json:"completion_counts"`
	RewardsEarned    []Reward           `bson:"rewards_earned" json:"rewards_earned"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewProgressionState returns the starting state for a user who has never
// recorded an action.
func NewProgressionState(userID primitive.ObjectID) *ProgressionState {
	return &ProgressionState{
		UserID:           userID,
		TotalPoints:      0,
		Level:            1,
		StreakDays:       0,
		CompletionCounts: make(map[UserAction]int),
		RewardsEarned:    []Reward{},
	}
}

// RecordResult is returned to the caller after an action is recorded.
type RecordResult struct {
	TotalPoints int     `json:"total_points"`
	Level       int     `json:"level"`
	StreakDays  int     `json:"streak_days"`
	NewReward   *Reward `json:"new_reward,omitempty"`
}

// ProgressSnapshot is the read-only view of a user's progression.
type ProgressSnapshot struct {
	TotalPoints int `json:"total_points"`
	Level       int `json:"level"`
	StreakDays  int `json:"streak_days"`
}
