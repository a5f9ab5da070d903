package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership asserts that a user belongs to a community. Exactly one
// document per (user_id, community_id); a unique compound index enforces it.
type Membership struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	CommunityID primitive.ObjectID `bson:"community_id" json:"community_id"`
	JoinedAt    time.Time          `bson:"joined_at" json:"joined_at"`
}

// Member is a membership row joined with its user record, as returned by
// the member listing.
type Member struct {
	User     PublicUser `bson:"user" json:"user"`
	JoinedAt time.Time  `bson:"joined_at" json:"joined_at"`
}

// MemberSortFields maps the accepted sort keys for member listings onto the
// fields of the joined document.
var MemberSortFields = map[string]string{
	"name":     "user.name",
	"email":    "user.email",
	"joinedAt": "joined_at",
}
