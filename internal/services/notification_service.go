package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// inactivityCutoff is how long a user must be idle before the reminder job
// nudges them.
const inactivityCutoff = 7 * 24 * time.Hour

// NotificationService encapsulates the business logic for notifications.
type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Create logs a single notification for a user.
func (s *NotificationService) Create(ctx context.Context, userID primitive.ObjectID, notifType, message string) error {
	if !models.NotificationTypes[notifType] {
		return fmt.Errorf("%w: unknown notification type %q", ErrInvalid, notifType)
	}

	notif := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
		Read:    false,
	}
	return s.repo.CreateNotification(ctx, notif)
}

// BulkCreate fans one message out to a list of recipients. Admin-only at
// the route layer.
func (s *NotificationService) BulkCreate(ctx context.Context, recipientIDs []string, notifType, message string) (int, error) {
	if !models.NotificationTypes[notifType] {
		return 0, fmt.Errorf("%w: unknown notification type %q", ErrInvalid, notifType)
	}
	if message == "" {
		return 0, fmt.Errorf("%w: message is required", ErrInvalid)
	}
	if len(recipientIDs) == 0 {
		return 0, fmt.Errorf("%w: at least one recipient is required", ErrInvalid)
	}

	notifs := make([]models.Notification, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid recipient ID %q", ErrInvalid, id)
		}
		notifs = append(notifs, models.Notification{
			UserID:  objID,
			Type:    notifType,
			Message: message,
			Read:    false,
		})
	}

	if err := s.repo.CreateNotifications(ctx, notifs); err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"type":  notifType,
		"count": len(notifs),
	}).Info("Bulk notifications created")
	return len(notifs), nil
}

// GetUserNotifications returns all unexpired notifications for a user.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkAsRead flips the read flag; only the recipient may do it.
func (s *NotificationService) MarkAsRead(ctx context.Context, notifID string, userID primitive.ObjectID) error {
	notif, err := s.getOwned(ctx, notifID, userID)
	if err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, notif.ID)
}

// Delete removes a notification; only the recipient may do it.
func (s *NotificationService) Delete(ctx context.Context, notifID string, userID primitive.ObjectID) error {
	notif, err := s.getOwned(ctx, notifID, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteNotification(ctx, notif.ID)
}

func (s *NotificationService) getOwned(ctx context.Context, notifID string, userID primitive.ObjectID) (*models.Notification, error) {
	objID, err := primitive.ObjectIDFromHex(notifID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid notification ID", ErrInvalid)
	}

	notif, err := s.repo.GetNotificationByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("notification %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get notification: %v", err)
	}
	if notif.UserID != userID {
		return nil, fmt.Errorf("%w: not your notification", ErrForbidden)
	}
	return notif, nil
}

// DeleteExpiredNotifications purges rows past their TTL. Called by cron.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	deleted, err := s.repo.DeleteExpiredNotifications(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		logrus.WithField("count", deleted).Info("Expired notifications purged")
	}
	return nil
}

// CheckInactiveUsers sends a Reminder to every user idle past the cutoff,
// skipping anyone reminded within the same window. Called by cron.
func (s *NotificationService) CheckInactiveUsers(ctx context.Context) error {
	users, err := s.userRepo.GetInactiveUsers(ctx, time.Now().Add(-inactivityCutoff))
	if err != nil {
		return fmt.Errorf("failed to fetch inactive users: %w", err)
	}

	now := time.Now()
	for _, user := range users {
		existing, err := s.repo.GetLatestNotificationByType(ctx, user.ID, models.NotificationReminder)
		if err == nil && existing != nil && now.Sub(existing.CreatedAt) < inactivityCutoff {
			continue
		}

		err = s.Create(ctx, user.ID, models.NotificationReminder,
			"You haven't been active for a while. Come back and make progress on your goals!")
		if err != nil {
			logrus.WithError(err).Warnf("Failed to send inactivity reminder to user %s", user.ID.Hex())
		}
	}
	return nil
}
