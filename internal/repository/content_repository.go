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

// ContentRepository handles database operations related to the content
// library.
type ContentRepository struct {
	collection *mongo.Collection
}

// NewContentRepository creates a new instance of ContentRepository.
func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{
		collection: db.Collection("content_library"),
	}
}

// CreateContentItem inserts a new library entry. The unique index on title
// makes duplicate titles fail with a duplicate key error.
func (r *ContentRepository) CreateContentItem(ctx context.Context, item *models.ContentItem) (*models.ContentItem, error) {
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert content item")
		return nil, err
	}
	item.ID = result.InsertedID.(primitive.ObjectID)
	return item, nil
}

// GetContentItemByID fetches a library entry by its ID.
func (r *ContentRepository) GetContentItemByID(ctx context.Context, id primitive.ObjectID) (*models.ContentItem, error) {
	var item models.ContentItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListContentItems returns one page of library entries, optionally filtered
// by category and a case-insensitive title search.
func (r *ContentRepository) ListContentItems(ctx context.Context, category, search string, skip, limit int64) ([]models.ContentItem, int64, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if search != "" {
		filter["title"] = primitive.Regex{Pattern: search, Options: "i"}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []models.ContentItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateContentItemFields applies a partial update to a library entry.
func (r *ContentRepository) UpdateContentItemFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// DeleteContentItem removes a library entry by its ID.
func (r *ContentRepository) DeleteContentItem(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
