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

// CommunityRepository handles database operations related to communities.
type CommunityRepository struct {
	collection *mongo.Collection
}

// NewCommunityRepository creates a new instance of CommunityRepository.
func NewCommunityRepository(db *mongo.Database) *CommunityRepository {
	return &CommunityRepository{
		collection: db.Collection("communities"),
	}
}

// CreateCommunity inserts a new community. The unique index on name makes
// duplicate names fail with a duplicate key error.
func (r *CommunityRepository) CreateCommunity(ctx context.Context, community *models.Community) (*models.Community, error) {
	community.CreatedAt = time.Now()
	community.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, community)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert community")
		return nil, err
	}
	community.ID = result.InsertedID.(primitive.ObjectID)

	logger.Log.WithField("community_id", community.ID.Hex()).Info("Community created successfully")
	return community, nil
}

// GetCommunityByID fetches a community by its ID.
func (r *CommunityRepository) GetCommunityByID(ctx context.Context, id primitive.ObjectID) (*models.Community, error) {
	var community models.Community
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&community)
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// ListCommunities returns a page of communities with an optional name/tag
// search term applied as a case-insensitive regex.
func (r *CommunityRepository) ListCommunities(ctx context.Context, search string, skip, limit int64) ([]models.Community, int64, error) {
	filter := bson.M{}
	if search != "" {
		regex := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"tags": regex},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch communities")
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var communities []models.Community
	if err := cursor.All(ctx, &communities); err != nil {
		return nil, 0, err
	}
	return communities, total, nil
}

// DeleteCommunity removes a community by its ID.
func (r *CommunityRepository) DeleteCommunity(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("community_id", id.Hex()).Error("Failed to delete community")
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	logger.Log.WithField("community_id", id.Hex()).Info("Community deleted successfully")
	return nil
}
