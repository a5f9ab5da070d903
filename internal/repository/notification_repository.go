package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// notificationTTL controls how long notifications stay visible before the
// cleanup job purges them.
const notificationTTL = 30 * 24 * time.Hour

// NotificationRepository handles database operations related to notifications.
type NotificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a new notification.
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	notif.CreatedAt = time.Now()
	notif.ExpiresAt = notif.CreatedAt.Add(notificationTTL)

	_, err := r.collection.InsertOne(ctx, notif)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return fmt.Errorf("failed to create notification: %v", err)
	}
	return nil
}

// CreateNotifications inserts one notification per recipient in a single
// write. Used by the admin bulk endpoint.
func (r *NotificationRepository) CreateNotifications(ctx context.Context, notifs []models.Notification) error {
	if len(notifs) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(notifs))
	for i := range notifs {
		notifs[i].CreatedAt = now
		notifs[i].ExpiresAt = now.Add(notificationTTL)
		docs = append(docs, notifs[i])
	}

	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notifications")
		return fmt.Errorf("failed to create notifications: %v", err)
	}
	return nil
}

// GetUserNotifications returns all unexpired notifications for a user,
// newest first.
func (r *NotificationRepository) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	filter := bson.M{
		"user_id":    userID,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "read", Value: 1}, {Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}
	return notifications, nil
}

// GetNotificationByID fetches a notification by its ID.
func (r *NotificationRepository) GetNotificationByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var notif models.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&notif)
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

// MarkAsRead sets notification's Read to true.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	return err
}

// DeleteNotification deletes a notification.
func (r *NotificationRepository) DeleteNotification(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteNotificationsByUser removes every notification addressed to a user.
func (r *NotificationRepository) DeleteNotificationsByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// DeleteExpiredNotifications purges notifications past their expiry.
func (r *NotificationRepository) DeleteExpiredNotifications(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired notifications: %v", err)
	}
	return result.DeletedCount, nil
}

// GetLatestNotificationByType returns the most recent notification of a
// given type for a user, if any.
func (r *NotificationRepository) GetLatestNotificationByType(ctx context.Context, userID primitive.ObjectID, notifType string) (*models.Notification, error) {
	filter := bson.M{
		"user_id": userID,
		"type":    notifType,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var notif models.Notification
	err := r.collection.FindOne(ctx, filter, opts).Decode(&notif)
	if err != nil {
		return nil, err
	}
	return &notif, nil
}
