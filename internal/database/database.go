package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidana2206/GrowthSpace/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes the MongoDB connection and ensures the indexes
// the application relies on.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	db := client.Database(cfg.DBName)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

// ensureIndexes creates the unique indexes that back the application's
// duplicate checks: one membership row per (user, community), unique
// community names, unique content titles, unique user emails.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"users": {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: unique,
		},
		"communities": {
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: unique,
		},
		"memberships": {
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "community_id", Value: 1}},
			Options: unique,
		},
		"content_library": {
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: unique,
		},
	}

	for collection, model := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %v", collection, err)
		}
	}

	return nil
}
