package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation types.
const (
	RecommendationProduct   = "Product"
	RecommendationService   = "Service"
	RecommendationCommunity = "Community"
)

// RecommendationTypes is the closed set of valid recommendation types.
var RecommendationTypes = map[string]bool{
	RecommendationProduct:   true,
	RecommendationService:   true,
	RecommendationCommunity: true,
}

// RecommendationContent is the structured payload of a recommendation.
type RecommendationContent struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Link        string `bson:"link,omitempty" json:"link,omitempty"`
}

// Recommendation is owned and mutated by a single user.
type Recommendation struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID    `bson:"user_id" json:"user_id"`
	Type      string                `bson:"type" json:"type"`
	Content   RecommendationContent `bson:"content" json:"content"`
	Feedback  string                `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt time.Time             `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time             `bson:"updated_at" json:"updated_at"`
}
