package cron

import (
	"context"

	"github.com/metajournal/reward-engine/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartRewardCronJobs schedules the daily reward-expiry scan.
func StartRewardCronJobs(expiryNotifier *jobs.ExpiryNotifier) {
	c := cron.New()

	// Expiring rewards and stale notifications, once a day at midnight
	c.AddFunc("0 0 * * *", func() {
		err := expiryNotifier.RunDailyScan(context.Background())
		if err != nil {
			logrus.WithError(err).Error("Reward expiry scan failed")
		}
	})

	c.Start()
}
