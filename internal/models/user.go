package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles form a single closed enum on the user document. Every gated route
// declares its allow-list against these values.
const (
	RoleUser       = "user"
	RoleModerator  = "Moderator"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

// AdminRoles are the privileged roles; only a SuperAdmin may grant them.
var AdminRoles = map[string]bool{
	RoleModerator:  true,
	RoleAdmin:      true,
	RoleSuperAdmin: true,
}

// User represents an account in GrowthSpace.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Role           string             `bson:"role" json:"role"`
	DateOfBirth    time.Time          `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Preferences    []string           `bson:"preferences,omitempty" json:"preferences,omitempty"`
	AvatarURL      string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	IsVerified     bool               `bson:"is_verified" json:"is_verified"`
	VerifyToken    string             `bson:"verify_token,omitempty" json:"-"`
	LastActiveAt   time.Time          `bson:"last_active_at,omitempty" json:"last_active_at,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the password-free projection returned by member listings.
type PublicUser struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	AvatarURL string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
}
