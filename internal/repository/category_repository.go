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

// categoryRepository implements the CategoryRepository interface using MongoDB.
type categoryRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewCategoryRepository creates a new MongoDB-backed category repository.
func NewCategoryRepository(db *mongo.Database, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		collection: db.Collection("categories"),
		logger:     logger.With().Str("repository", "category").Logger(),
	}
}

// List retrieves active categories sorted by name.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []model.Category
	if err := cursor.All(ctx, &categories); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode categories")
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a category by ID.
func (r *categoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	var category model.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("category_id", id.Hex()).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.Hex()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &category, nil
}

// ListByParent retrieves the direct children of a category.
func (r *categoryRepository) ListByParent(ctx context.Context, parentID primitive.ObjectID) ([]model.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"parent": parentID})
	if err != nil {
		r.logger.Error().Err(err).Str("parent_id", parentID.Hex()).Msg("failed to query subcategories")
		return nil, fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []model.Category
	if err := cursor.All(ctx, &categories); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode subcategories")
		return nil, fmt.Errorf("failed to decode subcategories: %w", err)
	}

	return categories, nil
}

// CountByParent counts the direct children of a category.
func (r *categoryRepository) CountByParent(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"parent": parentID})
	if err != nil {
		r.logger.Error().Err(err).Str("parent_id", parentID.Hex()).Msg("failed to count subcategories")
		return 0, fmt.Errorf("failed to count subcategories: %w", err)
	}

	return count, nil
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn().Str("name", category.Name).Msg("duplicate category name on insert")
			return model.NewDomainError(model.ErrCodeConflict, "Category already exists")
		}
		r.logger.Error().Err(err).Msg("failed to insert category")
		return fmt.Errorf("failed to insert category: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}

	return nil
}

// Update replaces the stored category document.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.NewDomainError(model.ErrCodeConflict, "Category already exists")
		}
		r.logger.Error().Err(err).Str("category_id", category.ID.Hex()).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.MatchedCount == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category.
func (r *categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.Hex()).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.DeletedCount == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}
