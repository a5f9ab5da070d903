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

// ProfileRepository handles database operations related to user profiles.
type ProfileRepository struct {
	collection *mongo.Collection
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection("profiles"),
	}
}

// CreateProfile inserts a new profile for a user.
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert profile")
		return nil, err
	}
	profile.ID = result.InsertedID.(primitive.ObjectID)

	logger.Log.WithField("profile_id", profile.ID.Hex()).Info("Profile created successfully")
	return profile, nil
}

// GetProfileByUserID fetches the profile owned by a user.
func (r *ProfileRepository) GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByID fetches a profile by its ID.
func (r *ProfileRepository) GetProfileByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfileFields applies a partial update to a profile document.
func (r *ProfileRepository) UpdateProfileFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		logger.Log.WithError(err).WithField("profile_id", id.Hex()).Error("Failed to update profile")
		return err
	}
	return nil
}

// AppendGoal adds a goal reference to the profile's goal list.
func (r *ProfileRepository) AppendGoal(ctx context.Context, profileID, goalID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"goals": goalID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": profileID}, update)
	return err
}

// AppendProgress adds a progress reference to the profile's progress list.
func (r *ProfileRepository) AppendProgress(ctx context.Context, profileID, progressID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"progress": progressID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": profileID}, update)
	return err
}

// DeleteProfileByUserID removes the profile owned by a user.
func (r *ProfileRepository) DeleteProfileByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to delete profile")
		return err
	}
	return nil
}
