package jobs

import (
	"context"
	"fmt"

	"github.com/metajournal/reward-engine/internal/services"
	"github.com/sirupsen/logrus"
)

type ExpiryNotifier struct {
	NotificationService *services.NotificationService
}

// NewExpiryNotifier creates a new instance of ExpiryNotifier
func NewExpiryNotifier(notifService *services.NotificationService) *ExpiryNotifier {
	return &ExpiryNotifier{
		NotificationService: notifService,
	}
}

// RunDailyScan warns users about rewards expiring in the next 3 days and
// drops notifications past their own lifetime.
func (n *ExpiryNotifier) RunDailyScan(ctx context.Context) error {
	if err := n.NotificationService.CheckExpiringRewards(ctx); err != nil {
		return fmt.Errorf("failed to check expiring rewards: %v", err)
	}

	if err := n.NotificationService.DeleteExpiredNotifications(ctx); err != nil {
		return fmt.Errorf("failed to delete expired notifications: %v", err)
	}

	logrus.Info("Reward expiry scan completed")
	return nil
}
