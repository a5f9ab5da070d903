package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the per-user extension record. Exactly one per user, created
// inside registration; its ID is the canonical owner key for goals and
// progress.
type Profile struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Strengths   []string             `bson:"strengths,omitempty" json:"strengths,omitempty"`
	GrowthAreas []string             `bson:"growth_areas,omitempty" json:"growth_areas,omitempty"`
	Goals       []primitive.ObjectID `bson:"goals,omitempty" json:"goals,omitempty"`
	Progress    []primitive.ObjectID `bson:"progress,omitempty" json:"progress,omitempty"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}
