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

// ProgressRepository handles database operations related to progress records.
type ProgressRepository struct {
	collection *mongo.Collection
}

// NewProgressRepository creates a new instance of ProgressRepository.
func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{
		collection: db.Collection("progress"),
	}
}

// CreateProgress inserts a new progress record.
func (r *ProgressRepository) CreateProgress(ctx context.Context, progress *models.Progress) (*models.Progress, error) {
	progress.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, progress)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert progress")
		return nil, err
	}
	progress.ID = result.InsertedID.(primitive.ObjectID)

	logger.Log.WithField("progress_id", progress.ID.Hex()).Info("Progress recorded successfully")
	return progress, nil
}

// GetProgressByGoal fetches all progress records for a goal, oldest first.
func (r *ProgressRepository) GetProgressByGoal(ctx context.Context, goalID primitive.ObjectID) ([]models.Progress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"goal_id": goalID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.Progress
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteProgressByGoal removes every progress record of a goal. Used by the
// goal-deletion cascade.
func (r *ProgressRepository) DeleteProgressByGoal(ctx context.Context, goalID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"goal_id": goalID})
	return err
}

// DeleteProgressByProfile removes every progress record owned by a profile.
// Used by the user-deletion cascade.
func (r *ProgressRepository) DeleteProgressByProfile(ctx context.Context, profileID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"profile_id": profileID})
	return err
}
