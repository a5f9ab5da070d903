package cron

import (
	"context"

	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartNotificationCronJobs schedules the periodic notification work:
// inactivity reminders daily, expired-row cleanup hourly.
func StartNotificationCronJobs(notificationService *services.NotificationService) {
	c := cron.New()

	// Inactive user reminders
	c.AddFunc("0 0 * * *", func() {
		err := notificationService.CheckInactiveUsers(context.Background())
		if err != nil {
			logrus.WithError(err).Error("CheckInactiveUsers failed")
		}
	})

	// Purge expired notifications
	c.AddFunc("@hourly", func() {
		err := notificationService.DeleteExpiredNotifications(context.Background())
		if err != nil {
			logrus.WithError(err).Error("DeleteExpiredNotifications failed")
		}
	})

	c.Start()
}
