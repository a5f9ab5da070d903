package repository

import (
	"context"
	"time"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MembershipRepository handles database operations related to community
// memberships.
type MembershipRepository struct {
	collection *mongo.Collection
}

// NewMembershipRepository creates a new instance of MembershipRepository.
func NewMembershipRepository(db *mongo.Database) *MembershipRepository {
	return &MembershipRepository{
		collection: db.Collection("memberships"),
	}
}

// CreateMembership inserts a membership row. The unique compound index on
// (user_id, community_id) makes a second join fail with a duplicate key
// error.
func (r *MembershipRepository) CreateMembership(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	membership.JoinedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, membership)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert membership")
		return nil, err
	}
	membership.ID = result.InsertedID.(primitive.ObjectID)

	logger.Log.WithFields(map[string]interface{}{
		"user_id":      membership.UserID.Hex(),
		"community_id": membership.CommunityID.Hex(),
	}).Info("Membership created successfully")
	return membership, nil
}

// DeleteMembership removes the row for a (user, community) pair.
func (r *MembershipRepository) DeleteMembership(ctx context.Context, userID, communityID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"user_id":      userID,
		"community_id": communityID,
	})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to delete membership")
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MembershipExists reports whether a membership row exists for the pair.
func (r *MembershipRepository) MembershipExists(ctx context.Context, userID, communityID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"user_id":      userID,
		"community_id": communityID,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListMembers joins membership rows to their user records via $lookup,
// excluding password and internal fields, and returns one page plus the
// total member count.
func (r *MembershipRepository) ListMembers(ctx context.Context, communityID primitive.ObjectID, sortField string, sortDir int, skip, limit int64) ([]models.Member, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{"community_id": communityID})
	if err != nil {
		return nil, 0, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"community_id": communityID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"joined_at":       1,
			"user._id":        1,
			"user.name":       1,
			"user.email":      1,
			"user.avatar_url": 1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: sortField, Value: sortDir}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Log.WithError(err).WithField("community_id", communityID.Hex()).Error("Failed to aggregate members")
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// ListMembershipsByUser returns all membership rows for a user.
func (r *MembershipRepository) ListMembershipsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Membership, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var memberships []models.Membership
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// DeleteMembershipsByCommunity removes every membership of a community.
func (r *MembershipRepository) DeleteMembershipsByCommunity(ctx context.Context, communityID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"community_id": communityID})
	return err
}

// DeleteMembershipsByUser removes every membership held by a user.
func (r *MembershipRepository) DeleteMembershipsByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
