package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal statuses. Transitions between them are free-form.
const (
	GoalStatusPending    = "Pending"
	GoalStatusInProgress = "In Progress"
	GoalStatusCompleted  = "Completed"
)

// GoalStatuses is the closed set of valid goal statuses.
var GoalStatuses = map[string]bool{
	GoalStatusPending:    true,
	GoalStatusInProgress: true,
	GoalStatusCompleted:  true,
}

// Goal belongs to a profile. The progress list is append-only and grows via
// the dedicated progress endpoint.
type Goal struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ProfileID   primitive.ObjectID   `bson:"profile_id" json:"profile_id"`
	Description string               `bson:"description" json:"description"`
	Status      string               `bson:"status" json:"status"`
	Progress    []primitive.ObjectID `bson:"progress,omitempty" json:"progress,omitempty"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}
