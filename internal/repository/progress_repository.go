package repository

import (
	"context"
	"time"

	"github.com/metajournal/reward-engine/internal/models"
	"github.com/metajournal/reward-engine/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProgressRepository persists one progression document per user.
type ProgressRepository struct {
	collection *mongo.Collection
}

// NewProgressRepository creates a new instance of ProgressRepository
func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{
		collection: db.Collection("progress"),
	}
}

// partialProgress mirrors the progression document without the rewards list,
// so counters survive a corrupt rewards_earned field.
type partialProgress struct {
	ID               primitive.ObjectID        `bson:"_id,omitempty"`
	UserID           primitive.ObjectID        `bson:"user_id"`
	TotalPoints      int                       `bson:"total_points"`
	Level            int                       `bson:"level"`
	StreakDays       int                       `bson:"streak_days"`
	LastStreakDate   *time.Time                `bson:"last_streak_date,omitempty"`
	CompletionCounts map[models.UserAction]int `bson:"completion_counts"`
	UpdatedAt        time.Time                 `bson:"updated_at"`
}

// Load fetches a user's progression document. A missing document yields
// (nil, nil). A rewards list that fails to decode degrades to an empty list
// while points, level and streak load normally.
func (r *ProgressRepository) Load(ctx context.Context, userID primitive.ObjectID) (*models.ProgressionState, error) {
	res := r.collection.FindOne(ctx, bson.M{"user_id": userID})
	raw, err := res.Raw()
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch progression document")
		return nil, err
	}

	var state models.ProgressionState
	if err := bson.Unmarshal(raw, &state); err == nil {
		return &state, nil
	}

	var partial partialProgress
	if err := bson.Unmarshal(raw, &partial); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to decode progression document")
		return nil, err
	}

	logger.Log.WithField("user_id", userID.Hex()).Warn("Rewards list failed to decode, continuing with empty list")
	return &models.ProgressionState{
		ID:               partial.ID,
		UserID:           partial.UserID,
		TotalPoints:      partial.TotalPoints,
		Level:            partial.Level,
		StreakDays:       partial.StreakDays,
		LastStreakDate:   partial.LastStreakDate,
		CompletionCounts: partial.CompletionCounts,
		RewardsEarned:    []models.Reward{},
		UpdatedAt:        partial.UpdatedAt,
	}, nil
}

// Save upserts a user's progression document in full.
func (r *ProgressRepository) Save(ctx context.Context, state *models.ProgressionState) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"user_id": state.UserID}, state, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", state.UserID.Hex()).Error("Failed to save progression document")
		return err
	}
	return nil
}

// GetAll fetches every progression document. Documents that fail to decode
// are skipped rather than failing the scan.
func (r *ProgressRepository) GetAll(ctx context.Context) ([]models.ProgressionState, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch progression documents")
		return nil, err
	}
	defer cursor.Close(ctx)

	var states []models.ProgressionState
	for cursor.Next(ctx) {
		var state models.ProgressionState
		if err := cursor.Decode(&state); err != nil {
			logger.Log.WithError(err).Warn("Skipping undecodable progression document")
			continue
		}
		states = append(states, state)
	}

	return states, cursor.Err()
}
