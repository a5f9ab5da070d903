package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community is a named group users can join and chat in. Messages are not
// stored on the community document; they live in their own collection and
// are joined at query time.
type Community struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
