package repository

import (
	"context"
	"time"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GoalRepository struct handles database operations related to goals.
type GoalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a new instance of GoalRepository.
func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{
		collection: db.Collection("goals"),
	}
}

// CreateGoal creates a new goal in the database.
func (r *GoalRepository) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert goal")
		return nil, err
	}
	goal.ID = result.InsertedID.(primitive.ObjectID)

	logger.Log.WithField("goal_id", goal.ID.Hex()).Info("Goal created successfully")
	return goal, nil
}

// GetGoalByID fetches a goal by its ID.
func (r *GoalRepository) GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error) {
	var goal models.Goal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetGoalsByProfile fetches all goals owned by a profile, with an optional
// status filter.
func (r *GoalRepository) GetGoalsByProfile(ctx context.Context, profileID primitive.ObjectID, status string) ([]models.Goal, error) {
	filter := bson.M{"profile_id": profileID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("profile_id", profileID.Hex()).Error("Failed to fetch goals")
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"profile_id": profileID.Hex(),
		"count":      len(goals),
	}).Info("Goals fetched successfully")
	return goals, nil
}

// UpdateGoalFields applies a partial update to a goal document.
func (r *GoalRepository) UpdateGoalFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to update goal")
		return err
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal updated successfully")
	return nil
}

// AppendProgress adds a progress reference to the goal's progress list.
// The list only ever grows through this method.
func (r *GoalRepository) AppendProgress(ctx context.Context, goalID, progressID primitive.ObjectID) error {
	update := bson.M{
		"$push": bson.M{"progress": progressID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": goalID}, update)
	return err
}

// DeleteGoal deletes a goal from the database by its ID.
func (r *GoalRepository) DeleteGoal(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to delete goal")
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal deleted successfully")
	return nil
}

// DeleteGoalsByProfile removes every goal owned by a profile. Used by the
// user-deletion cascade.
func (r *GoalRepository) DeleteGoalsByProfile(ctx context.Context, profileID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"profile_id": profileID})
	return err
}
