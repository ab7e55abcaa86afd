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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reviewRepository implements the ReviewRepository interface using MongoDB.
type reviewRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewReviewRepository creates a new MongoDB-backed review repository.
func NewReviewRepository(db *mongo.Database, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		collection: db.Collection("reviews"),
		logger:     logger.With().Str("repository", "review").Logger(),
	}
}

// Create inserts a new review. The unique (product, user) index rejects a
// second review for the same pair.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn().
				Str("product_id", review.Product.Hex()).
				Str("user_id", review.User.Hex()).
				Msg("duplicate review for (product, user) pair")
			return model.ErrDuplicateReview
		}
		r.logger.Error().Err(err).Msg("failed to insert review")
		return fmt.Errorf("failed to insert review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// GetByID retrieves a review by ID.
func (r *reviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Review, error) {
	var review model.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("review_id", id.Hex()).Msg("review not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id.Hex()).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return &review, nil
}

// ListByProduct retrieves a product's reviews newest-first with pagination,
// plus the total count.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID primitive.ObjectID, limit, skip int) ([]model.Review, int64, error) {
	query := bson.M{"product": productID}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(skip))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.Hex()).Msg("failed to query reviews")
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []model.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode reviews")
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count reviews")
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return reviews, total, nil
}

// RatingsForProduct retrieves every rating value for a product.
func (r *reviewRepository) RatingsForProduct(ctx context.Context, productID primitive.ObjectID) ([]int, error) {
	opts := options.Find().SetProjection(bson.M{"rating": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"product": productID}, opts)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.Hex()).Msg("failed to query ratings")
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Rating int `bson:"rating"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode ratings")
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}

	ratings := make([]int, len(docs))
	for i, d := range docs {
		ratings[i] = d.Rating
	}

	return ratings, nil
}

// Update replaces the stored review document.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": review.ID}, review)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", review.ID.Hex()).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.MatchedCount == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// Delete removes a review.
func (r *reviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id.Hex()).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.DeletedCount == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}
