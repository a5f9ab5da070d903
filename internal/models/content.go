package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentCategories is the closed set of content library categories.
var ContentCategories = map[string]bool{
	"Fitness":       true,
	"Finance":       true,
	"Productivity":  true,
	"Mental Health": true,
}

// ContentItem is an admin-curated library entry pointing at an external
// resource. Titles are unique.
type ContentItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	URL         string             `bson:"url" json:"url"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
