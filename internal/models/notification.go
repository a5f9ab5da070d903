package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationReminder       = "Reminder"
	NotificationRecommendation = "Recommendation"
	NotificationUpdate         = "Update"
)

// NotificationTypes is the closed set of valid notification types.
var NotificationTypes = map[string]bool{
	NotificationReminder:       true,
	NotificationRecommendation: true,
	NotificationUpdate:         true,
}

// Notification is delivered to a single recipient. Expired rows are purged
// by the cleanup job.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      string             `bson:"type" json:"type"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}
