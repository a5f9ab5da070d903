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

// RecommendationRepository handles database operations related to
// recommendations.
type RecommendationRepository struct {
	collection *mongo.Collection
}

// NewRecommendationRepository creates a new instance of RecommendationRepository.
func NewRecommendationRepository(db *mongo.Database) *RecommendationRepository {
	return &RecommendationRepository{
		collection: db.Collection("recommendations"),
	}
}

// CreateRecommendation inserts a new recommendation.
func (r *RecommendationRepository) CreateRecommendation(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error) {
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, rec)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert recommendation")
		return nil, err
	}
	rec.ID = result.InsertedID.(primitive.ObjectID)
	return rec, nil
}

// GetRecommendationByID fetches a recommendation by its ID.
func (r *RecommendationRepository) GetRecommendationByID(ctx context.Context, id primitive.ObjectID) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecommendationsByUser returns all recommendations owned by a user.
func (r *RecommendationRepository) ListRecommendationsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Recommendation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []models.Recommendation
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// UpdateRecommendationFields applies a partial update to a recommendation.
func (r *RecommendationRepository) UpdateRecommendationFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// DeleteRecommendation removes a recommendation by its ID.
func (r *RecommendationRepository) DeleteRecommendation(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
