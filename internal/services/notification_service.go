package services

import (
	"context"
	"fmt"
	"time"

	"github.com/metajournal/reward-engine/internal/models"
	"github.com/metajournal/reward-engine/internal/repository"
	"github.com/metajournal/reward-engine/pkg/email"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// expiryWarningWindow is how far ahead the expiry scan looks.
const expiryWarningWindow = 3 * 24 * time.Hour

type NotificationService struct {
	repo         *repository.NotificationRepository
	progressRepo *repository.ProgressRepository
	clock        Clock
}

func NewNotificationService(repo *repository.NotificationRepository, progressRepo *repository.ProgressRepository, clock Clock) *NotificationService {
	return &NotificationService{
		repo:         repo,
		progressRepo: progressRepo,
		clock:        clock,
	}
}

// CreateNotification logs a new notification for a user
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message, rewardID string) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Read:     false,
		RewardID: rewardID,
	}
	return s.repo.CreateNotification(ctx, notif)
}

// NotifyMilestone records a milestone notification and emails the user when
// an address is on file. Email failures are logged, never returned.
func (s *NotificationService) NotifyMilestone(ctx context.Context, userID primitive.ObjectID, userEmail string, reward *models.Reward) error {
	title := "🎉 " + reward.Name
	message := fmt.Sprintf("You earned \"%s\"! %s", reward.Name, reward.Description)

	if err := s.CreateNotification(ctx, userID, "milestone_earned", title, message, reward.ID); err != nil {
		return fmt.Errorf("failed to record milestone notification: %v", err)
	}

	if userEmail != "" {
		if err := email.SendEmail(userEmail, title, message); err != nil {
			logrus.WithError(err).WithField("user_id", userID.Hex()).Warn("Failed to send milestone email")
		}
	}
	return nil
}

// GetUserNotifications returns all notifications for a user
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkNotificationAsRead sets the "read" status of a notification to true
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, notifID)
}

// CheckExpiringRewards notifies users of rewards that expire within the next
// three days. Each reward is notified about at most once.
func (s *NotificationService) CheckExpiringRewards(ctx context.Context) error {
	states, err := s.progressRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch progression states: %w", err)
	}

	now := s.clock.Now()
	cutoff := now.Add(expiryWarningWindow)

	for _, state := range states {
		for _, reward := range state.RewardsEarned {
			if reward.ExpiryDate == nil || reward.ExpiryDate.Before(now) || reward.ExpiryDate.After(cutoff) {
				continue
			}

			exists, err := s.repo.HasNotificationForReward(ctx, state.UserID, "reward_expiring", reward.ID)
			if err != nil || exists {
				continue
			}

			err = s.CreateNotification(ctx, state.UserID, "reward_expiring",
				"Reward Expiring Soon",
				fmt.Sprintf("Your reward \"%s\" expires on %s. Redeem it before it's gone!", reward.Name, reward.ExpiryDate.Format("Jan 2")),
				reward.ID,
			)
			if err != nil {
				logrus.WithError(err).Warnf("Failed to send expiry notification to user %s", state.UserID.Hex())
			}
		}
	}

	return nil
}

// DeleteExpiredNotifications removes notifications past their own expiry.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	return s.repo.DeleteExpiredNotifications(ctx)
}
