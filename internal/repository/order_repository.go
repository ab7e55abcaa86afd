package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// orderRepository implements the OrderRepository interface using MongoDB.
type orderRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewOrderRepository creates a new MongoDB-backed order repository.
func NewOrderRepository(db *mongo.Database, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		collection: db.Collection("orders"),
		logger:     logger.With().Str("repository", "order").Logger(),
	}
}

// Create inserts a new order.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		r.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}

	return nil
}

// GetByID retrieves an order by ID.
func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	var order model.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("order_id", id.Hex()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.Hex()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &order, nil
}

// List retrieves all orders newest-first.
func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.find(ctx, bson.M{})
}

// ListByUser retrieves a user's orders newest-first.
func (r *orderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error) {
	return r.find(ctx, bson.M{"user": userID})
}

func (r *orderRepository) find(ctx context.Context, query bson.M) ([]model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode orders")
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus overwrites an order's status and returns the updated document.
func (r *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, deliveredAt *time.Time) (*model.Order, error) {
	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	if deliveredAt != nil {
		set["isDelivered"] = true
		set["deliveredAt"] = *deliveredAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order model.Order
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.Hex()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

// MarkPaid records a successful payment on an order.
func (r *orderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, paidAt time.Time, result model.PaymentResult) error {
	update := bson.M{"$set": bson.M{
		"isPaid":        true,
		"paidAt":        paidAt,
		"paymentResult": result,
		"updatedAt":     time.Now().UTC(),
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.Hex()).Msg("failed to mark order paid")
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	if res.MatchedCount == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// HasDeliveredProduct reports whether the user has a delivered order
// containing the product.
func (r *orderRepository) HasDeliveredProduct(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	query := bson.M{
		"user":          userID,
		"items.product": productID,
		"status":        model.OrderStatusDelivered,
	}

	count, err := r.collection.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.Hex()).
			Str("product_id", productID.Hex()).
			Msg("failed to check delivered orders")
		return false, fmt.Errorf("failed to check delivered orders: %w", err)
	}

	return count > 0, nil
}
