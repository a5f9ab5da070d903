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

// MessageRepository handles database operations related to community
// messages. The message list of a community is derived from this
// collection at query time; nothing is stored on the community document.
type MessageRepository struct {
	collection *mongo.Collection
}

// NewMessageRepository creates a new instance of MessageRepository.
func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		collection: db.Collection("messages"),
	}
}

// CreateMessage inserts a new message.
func (r *MessageRepository) CreateMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert message")
		return nil, err
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return msg, nil
}

// GetMessageByID fetches a message by its ID.
func (r *MessageRepository) GetMessageByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var msg models.Message
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessagesByCommunity returns one newest-first page of a community's
// messages with the sender's name and avatar attached via $lookup.
func (r *MessageRepository) ListMessagesByCommunity(ctx context.Context, communityID primitive.ObjectID, skip, limit int64) ([]models.Message, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{"community_id": communityID})
	if err != nil {
		return nil, 0, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"community_id": communityID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "sender_id",
			"foreignField": "_id",
			"as":           "sender",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$sender", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{
			"sender_name":   "$sender.name",
			"sender_avatar": "$sender.avatar_url",
		}}},
		{{Key: "$project", Value: bson.M{"sender": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Log.WithError(err).WithField("community_id", communityID.Hex()).Error("Failed to fetch messages")
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// DeleteMessage removes a message by its ID.
func (r *MessageRepository) DeleteMessage(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("message_id", id.Hex()).Error("Failed to delete message")
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteMessagesByCommunity removes every message of a community.
func (r *MessageRepository) DeleteMessagesByCommunity(ctx context.Context, communityID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"community_id": communityID})
	return err
}
