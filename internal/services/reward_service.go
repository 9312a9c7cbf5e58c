package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/metajournal/reward-engine/internal/models"
	"github.com/metajournal/reward-engine/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardService owns all mutable progression state. RecordAction is the sole
// mutating entry point; each user's state is guarded by its own mutex so
// concurrent requests for the same user serialize.
type RewardService struct {
	store               ProgressStore
	scheduler           *RewardScheduler
	generator           *RewardGenerator
	tracker             *ProgressionTracker
	clock               Clock
	NotificationService *NotificationService

	mu    sync.Mutex
	users map[primitive.ObjectID]*userState
}

// userState is the in-memory progression of one user plus the pending reward
// pointer. The pending pointer is display state and is not persisted.
type userState struct {
	mu      sync.Mutex
	state   *models.ProgressionState
	pending *models.Reward
}

// NewRewardService creates the engine with injected store, policy, clock and
// random source.
func NewRewardService(store ProgressStore, policy SchedulePolicy, clock Clock, rng RandomSource, notificationService *NotificationService) *RewardService {
	return &RewardService{
		store:               store,
		scheduler:           NewRewardScheduler(policy, rng),
		generator:           NewRewardGenerator(clock, rng),
		tracker:             NewProgressionTracker(clock),
		clock:               clock,
		NotificationService: notificationService,
		users:               make(map[primitive.ObjectID]*userState),
	}
}

// userStateFor returns the cached state for a user, loading it from the
// store on first touch. A load error leaves the state unloaded so the next
// call retries; synthesizing a fresh state after a failed read would let a
// later save overwrite the user's real document. Only a legitimately absent
// document starts a fresh state. The user's mutex is held on a successful
// return; the caller must unlock it.
func (s *RewardService) userStateFor(ctx context.Context, userID primitive.ObjectID) (*userState, error) {
	s.mu.Lock()
	us, ok := s.users[userID]
	if !ok {
		us = &userState{}
		s.users[userID] = us
	}
	s.mu.Unlock()

	us.mu.Lock()
	if us.state == nil {
		state, err := s.store.Load(ctx, userID)
		if err != nil {
			us.mu.Unlock()
			logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to load progression state")
			return nil, fmt.Errorf("failed to load progression state: %v", err)
		}
		if state == nil {
			state = models.NewProgressionState(userID)
		}
		if state.CompletionCounts == nil {
			state.CompletionCounts = make(map[models.UserAction]int)
		}
		if state.Level < 1 {
			state.Level = 1
		}
		us.state = state
	}
	return us, nil
}

// RecordAction records a user action: points and completion counts first,
// then the schedule decision, then level and streak progression, then one
// persistence write. The in-memory result is returned even when the write
// fails; the failure is logged and the next mutation rewrites the document.
func (s *RewardService) RecordAction(ctx context.Context, userID primitive.ObjectID, userEmail string, action models.UserAction) (*models.RecordResult, error) {
	if action.IsSynthetic() {
		return nil, fmt.Errorf("action %q is internal and cannot be recorded", action)
	}
	if _, err := models.ParseAction(string(action)); err != nil {
		return nil, err
	}

	us, err := s.userStateFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer us.mu.Unlock()
	state := us.state

	params := action.Params()
	state.TotalPoints += params.BasePoints
	state.CompletionCounts[action]++

	var newReward *models.Reward
	if s.scheduler.ShouldGrantReward(action, state) {
		reward := s.generator.GenerateReward(action)
		state.RewardsEarned = append(state.RewardsEarned, reward)
		newReward = &reward
	}

	newLevel, levelReward := s.tracker.UpdateLevel(state.TotalPoints, state.Level)
	state.Level = newLevel
	if levelReward != nil {
		state.RewardsEarned = append(state.RewardsEarned, *levelReward)
		if newReward == nil {
			newReward = levelReward
		}
		s.notifyMilestone(userID, userEmail, levelReward)
	}

	if params.AffectsStreak {
		if streakReward := s.tracker.UpdateStreak(state); streakReward != nil {
			state.RewardsEarned = append(state.RewardsEarned, *streakReward)
			if newReward == nil {
				newReward = streakReward
			}
			s.notifyMilestone(userID, userEmail, streakReward)
		}
	}

	if newReward != nil {
		us.pending = newReward
	}

	state.UpdatedAt = s.clock.Now()
	if err := s.store.Save(ctx, state); err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to persist progression state")
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id":      userID.Hex(),
		"action":       action,
		"total_points": state.TotalPoints,
		"level":        state.Level,
		"streak_days":  state.StreakDays,
		"rewarded":     newReward != nil,
	}).Info("Action recorded")

	return &models.RecordResult{
		TotalPoints: state.TotalPoints,
		Level:       state.Level,
		StreakDays:  state.StreakDays,
		NewReward:   newReward,
	}, nil
}

// notifyMilestone records a milestone notification and, when an email is on
// file, congratulates the user. Both are best-effort.
func (s *RewardService) notifyMilestone(userID primitive.ObjectID, userEmail string, reward *models.Reward) {
	if s.NotificationService == nil {
		return
	}
	go func() {
		err := s.NotificationService.NotifyMilestone(context.Background(), userID, userEmail, reward)
		if err != nil {
			logrus.WithError(err).Warn("Failed to send milestone notification")
		}
	}()
}

// PendingReward returns the reward awaiting display, if any.
func (s *RewardService) PendingReward(ctx context.Context, userID primitive.ObjectID) (*models.Reward, error) {
	us, err := s.userStateFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer us.mu.Unlock()
	return us.pending, nil
}

// AcknowledgeReward clears the pending reward pointer. The reward itself
// stays in the earned collection.
func (s *RewardService) AcknowledgeReward(ctx context.Context, userID primitive.ObjectID) error {
	us, err := s.userStateFor(ctx, userID)
	if err != nil {
		return err
	}
	defer us.mu.Unlock()
	us.pending = nil
	return nil
}

// RedeemReward removes a reward from the earned collection and persists the
// change. Redeeming an unknown id is a no-op, not an error.
func (s *RewardService) RedeemReward(ctx context.Context, userID primitive.ObjectID, rewardID string) error {
	us, err := s.userStateFor(ctx, userID)
	if err != nil {
		return err
	}
	defer us.mu.Unlock()
	state := us.state

	found := false
	kept := state.RewardsEarned[:0]
	for _, reward := range state.RewardsEarned {
		if reward.ID == rewardID {
			found = true
			continue
		}
		kept = append(kept, reward)
	}
	if !found {
		logger.Log.WithFields(map[string]interface{}{
			"user_id":   userID.Hex(),
			"reward_id": rewardID,
		}).Warn("Redeem requested for unknown reward")
		return nil
	}
	state.RewardsEarned = kept

	if us.pending != nil && us.pending.ID == rewardID {
		us.pending = nil
	}

	state.UpdatedAt = s.clock.Now()
	if err := s.store.Save(ctx, state); err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to persist state after redemption")
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id":   userID.Hex(),
		"reward_id": rewardID,
	}).Info("Reward redeemed")
	return nil
}

// GetProgress returns a read-only snapshot of points, level and streak.
func (s *RewardService) GetProgress(ctx context.Context, userID primitive.ObjectID) (*models.ProgressSnapshot, error) {
	us, err := s.userStateFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer us.mu.Unlock()
	return &models.ProgressSnapshot{
		TotalPoints: us.state.TotalPoints,
		Level:       us.state.Level,
		StreakDays:  us.state.StreakDays,
	}, nil
}

// GetRewards returns the earned rewards, optionally filtering out expired
// ones.
func (s *RewardService) GetRewards(ctx context.Context, userID primitive.ObjectID, activeOnly bool) ([]models.Reward, error) {
	us, err := s.userStateFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer us.mu.Unlock()

	rewards := make([]models.Reward, 0, len(us.state.RewardsEarned))
	now := s.clock.Now()
	for _, reward := range us.state.RewardsEarned {
		if activeOnly && reward.IsExpired(now) {
			continue
		}
		rewards = append(rewards, reward)
	}
	return rewards, nil
}
