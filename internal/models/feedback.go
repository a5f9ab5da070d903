package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback length and rating bounds.
const (
	MinFeedbackLength = 10
	MaxFeedbackLength = 1000
)

// Feedback is a free-text review with a 1-5 rating.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Text      string             `bson:"text" json:"text"`
	Rating    int                `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Validate checks the feedback text length and rating range.
func (f *Feedback) Validate() error {
	length := len([]rune(f.Text))
	if length < MinFeedbackLength || length > MaxFeedbackLength {
		return fmt.Errorf("feedback text must be between %d and %d characters", MinFeedbackLength, MaxFeedbackLength)
	}
	if f.Rating < 1 || f.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
