package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Milestone is an embedded step inside a progress record.
type Milestone struct {
	Title      string     `bson:"title" json:"title"`
	Achieved   bool       `bson:"achieved" json:"achieved"`
	AchievedAt *time.Time `bson:"achieved_at,omitempty" json:"achieved_at,omitempty"`
}

// Progress records a percentage update against a goal, with embedded
// milestones and free-text notes.
type Progress struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID  primitive.ObjectID `bson:"profile_id" json:"profile_id"`
	GoalID     primitive.ObjectID `bson:"goal_id" json:"goal_id"`
	Percentage int                `bson:"percentage" json:"percentage"`
	Milestones []Milestone        `bson:"milestones,omitempty" json:"milestones,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// ClampPercentage validates and clamps a percentage write. Values above 100
// are stored as 100; negative values are rejected.
func ClampPercentage(value int) (int, error) {
	if value < 0 {
		return 0, fmt.Errorf("percentage must be at least 0")
	}
	if value > 100 {
		return 100, nil
	}
	return value, nil
}

// MarkAchievedMilestones stamps every unachieved milestone once the
// recorded percentage reaches 100.
func MarkAchievedMilestones(milestones []Milestone, percentage int, now time.Time) []Milestone {
	if percentage < 100 {
		return milestones
	}
	for i := range milestones {
		if !milestones[i].Achieved {
			milestones[i].Achieved = true
			at := now
			milestones[i].AchievedAt = &at
		}
	}
	return milestones
}
