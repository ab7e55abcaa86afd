package database

import (
	"context"
	"fmt"

	"storefront/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the repositories.
const (
	CollectionUsers      = "users"
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionCarts      = "carts"
	CollectionOrders     = "orders"
	CollectionReviews    = "reviews"
)

// Connect establishes a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	logger.Info().
		Str("database", cfg.Database).
		Msg("connecting to MongoDB")

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info().Msg("MongoDB connection established")

	return client, nil
}

// EnsureIndexes creates the indexes the domain relies on: unique email per
// user, one cart per user, one review per (product, user), unique category
// name and slug, sparse-unique SKU, and the product search indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionCarts: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionReviews: {
			{
				Keys:    bson.D{{Key: "product", Value: 1}, {Key: "user", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionCategories: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionProducts: {
			{
				Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			},
			{
				Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}},
			},
			{
				Keys:    bson.D{{Key: "inventory.sku", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
		},
		CollectionOrders: {
			{
				Keys:    bson.D{{Key: "orderNumber", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}

	return nil
}
