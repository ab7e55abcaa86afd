package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// cartRepository implements the CartRepository interface using MongoDB.
// Each cart is a single document, so the store's per-document atomicity is
// the only serialization cart mutations need.
type cartRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewCartRepository creates a new MongoDB-backed cart repository.
func NewCartRepository(db *mongo.Database, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		collection: db.Collection("carts"),
		logger:     logger.With().Str("repository", "cart").Logger(),
	}
}

// GetByUser retrieves a user's cart.
func (r *cartRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*model.Cart, error) {
	var cart model.Cart
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return &cart, nil
}

// Create inserts a new cart for a user.
func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	result, err := r.collection.InsertOne(ctx, cart)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", cart.User.Hex()).Msg("failed to insert cart")
		return fmt.Errorf("failed to insert cart: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		cart.ID = oid
	}

	return nil
}

// Update replaces the stored cart document.
func (r *cartRepository) Update(ctx context.Context, cart *model.Cart) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.ID.Hex()).Msg("failed to update cart")
		return fmt.Errorf("failed to update cart: %w", err)
	}

	if result.MatchedCount == 0 {
		return model.ErrCartNotFound
	}

	return nil
}

// DeleteByUser removes a user's cart.
func (r *cartRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.Hex()).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
