package repository

import (
	"context"
	"time"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedbackRepository handles database operations related to feedback.
type FeedbackRepository struct {
	collection *mongo.Collection
}

// NewFeedbackRepository creates a new instance of FeedbackRepository.
func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{
		collection: db.Collection("feedback"),
	}
}

// CreateFeedback inserts a new feedback entry.
func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *models.Feedback) (*models.Feedback, error) {
	feedback.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert feedback")
		return nil, err
	}
	feedback.ID = result.InsertedID.(primitive.ObjectID)
	return feedback, nil
}

// GetFeedbackByID fetches a feedback entry by its ID.
func (r *FeedbackRepository) GetFeedbackByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&feedback)
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListFeedback returns one newest-first page of all feedback.
func (r *FeedbackRepository) ListFeedback(ctx context.Context, skip, limit int64) ([]models.Feedback, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []models.Feedback
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListFeedbackByUser returns all feedback authored by a user.
func (r *FeedbackRepository) ListFeedbackByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.Feedback
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteFeedback removes a feedback entry by its ID.
func (r *FeedbackRepository) DeleteFeedback(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
