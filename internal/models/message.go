package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxMessageLength bounds the body of a community message.
const MaxMessageLength = 2000

// Message is a chat message inside a community. Immutable after creation;
// deletable by its sender or an admin.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	CommunityID primitive.ObjectID `bson:"community_id" json:"community_id"`
	Body        string             `bson:"body" json:"body"`
	Attachments []string           `bson:"attachments,omitempty" json:"attachments,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`

	// Populated at read time, never stored.
	SenderName   string `bson:"sender_name,omitempty" json:"sender_name,omitempty"`
	SenderAvatar string `bson:"sender_avatar,omitempty" json:"sender_avatar,omitempty"`
}

// ValidateMessageBody rejects empty and over-length message bodies.
func ValidateMessageBody(body string) error {
	if body == "" {
		return fmt.Errorf("message body is required")
	}
	if len([]rune(body)) > MaxMessageLength {
		return fmt.Errorf("message body exceeds %d characters", MaxMessageLength)
	}
	return nil
}
