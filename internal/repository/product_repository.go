package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productRepository implements the ProductRepository interface using MongoDB.
type productRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewProductRepository creates a new MongoDB-backed product repository.
func NewProductRepository(db *mongo.Database, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		collection: db.Collection("products"),
		logger:     logger.With().Str("repository", "product").Logger(),
	}
}

// buildListQuery translates a ProductFilter into a MongoDB filter document.
func buildListQuery(filter model.ProductFilter) bson.M {
	query := bson.M{"isActive": true}

	if filter.Category != "" {
		if categoryID, err := primitive.ObjectIDFromHex(filter.Category); err == nil {
			query["category"] = categoryID
		}
	}

	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	return query
}

// parseSort translates a sort key such as "-createdAt" or "price" into a
// MongoDB sort document.
func parseSort(sort string) bson.D {
	field := sort
	direction := 1
	if strings.HasPrefix(sort, "-") {
		field = sort[1:]
		direction = -1
	}
	if field == "" {
		field = "createdAt"
		direction = -1
	}
	return bson.D{{Key: field, Value: direction}}
}

// List retrieves active products matching the filter, plus the total count.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error) {
	query := buildListQuery(filter)

	opts := options.Find().
		SetSort(parseSort(filter.Sort)).
		SetSkip(int64(filter.Skip())).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode products")
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a product by ID.
func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("product_id", id.Hex()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.Hex()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &product, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode products")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn().Str("sku", product.Inventory.SKU).Msg("duplicate SKU on product insert")
			return model.ErrDuplicateSKU
		}
		r.logger.Error().Err(err).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	return nil
}

// Update replaces the stored product document.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrDuplicateSKU
		}
		r.logger.Error().Err(err).Str("product_id", product.ID.Hex()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.Hex()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// CountByCategory counts products referencing a category.
func (r *productRepository) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"category": categoryID})
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", categoryID.Hex()).Msg("failed to count products by category")
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}

	return count, nil
}

// DecrementInventory atomically decrements a product's stock quantity.
// Independent per-product update; checkout does not wrap these in a
// cross-document transaction.
func (r *productRepository) DecrementInventory(ctx context.Context, id primitive.ObjectID, quantity int) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"inventory.quantity": -quantity}},
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.Hex()).Msg("failed to decrement inventory")
		return fmt.Errorf("failed to decrement inventory: %w", err)
	}

	if result.MatchedCount == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// SetRating overwrites a product's cached aggregate rating.
func (r *productRepository) SetRating(ctx context.Context, id primitive.ObjectID, rating model.Rating) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"rating.average": rating.Average,
			"rating.count":   rating.Count,
		}},
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.Hex()).Msg("failed to set product rating")
		return fmt.Errorf("failed to set product rating: %w", err)
	}

	if result.MatchedCount == 0 {
		return model.ErrProductNotFound
	}

	return nil
}
