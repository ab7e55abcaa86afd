package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID. Returns (nil, nil) when not found.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns (nil, nil) when not found.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Update replaces the stored user document.
	Update(ctx context.Context, user *model.User) error

	// List retrieves users newest-first with pagination, plus the total count.
	List(ctx context.Context, limit, skip int) ([]model.User, int64, error)

	// Delete removes a user. Returns model.ErrUserNotFound when absent.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves active products matching the filter, plus the total count.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error)

	// GetByID retrieves a product by ID. Returns (nil, nil) when not found.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Product, error)

	// Create inserts a new product. Returns model.ErrDuplicateSKU on a
	// uniqueness violation.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces the stored product document.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns model.ErrProductNotFound when absent.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// CountByCategory counts products referencing a category.
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)

	// DecrementInventory atomically decrements a product's stock quantity.
	DecrementInventory(ctx context.Context, id primitive.ObjectID, quantity int) error

	// SetRating overwrites a product's cached aggregate rating.
	SetRating(ctx context.Context, id primitive.ObjectID, rating model.Rating) error
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// List retrieves active categories sorted by name.
	List(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a category by ID. Returns (nil, nil) when not found.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error)

	// ListByParent retrieves the direct children of a category.
	ListByParent(ctx context.Context, parentID primitive.ObjectID) ([]model.Category, error)

	// CountByParent counts the direct children of a category.
	CountByParent(ctx context.Context, parentID primitive.ObjectID) (int64, error)

	// Create inserts a new category. Returns a CONFLICT domain error on a
	// duplicate name or slug.
	Create(ctx context.Context, category *model.Category) error

	// Update replaces the stored category document.
	Update(ctx context.Context, category *model.Category) error

	// Delete removes a category. Returns model.ErrCategoryNotFound when absent.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// GetByUser retrieves a user's cart. Returns (nil, nil) when absent.
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*model.Cart, error)

	// Create inserts a new cart for a user.
	Create(ctx context.Context, cart *model.Cart) error

	// Update replaces the stored cart document.
	Update(ctx context.Context, cart *model.Cart) error

	// DeleteByUser removes a user's cart.
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create inserts a new order.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by ID. Returns (nil, nil) when not found.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)

	// List retrieves all orders newest-first.
	List(ctx context.Context) ([]model.Order, error)

	// ListByUser retrieves a user's orders newest-first.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error)

	// UpdateStatus overwrites an order's status and returns the updated
	// document, stamping delivery when deliveredAt is set. Returns
	// (nil, nil) when the order does not exist.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, deliveredAt *time.Time) (*model.Order, error)

	// MarkPaid records a successful payment on an order. The update is a
	// plain overwrite, so webhook replays reapply the same values.
	MarkPaid(ctx context.Context, id primitive.ObjectID, paidAt time.Time, result model.PaymentResult) error

	// HasDeliveredProduct reports whether the user has a delivered order
	// containing the product.
	HasDeliveredProduct(ctx context.Context, userID, productID primitive.ObjectID) (bool, error)
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	// Create inserts a new review. Returns model.ErrDuplicateReview when the
	// (product, user) pair already has one.
	Create(ctx context.Context, review *model.Review) error

	// GetByID retrieves a review by ID. Returns (nil, nil) when not found.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Review, error)

	// ListByProduct retrieves a product's reviews newest-first with
	// pagination, plus the total count.
	ListByProduct(ctx context.Context, productID primitive.ObjectID, limit, skip int) ([]model.Review, int64, error)

	// RatingsForProduct retrieves every rating value for a product. Used by
	// the full re-scan rating recompute.
	RatingsForProduct(ctx context.Context, productID primitive.ObjectID) ([]int, error)

	// Update replaces the stored review document.
	Update(ctx context.Context, review *model.Review) error

	// Delete removes a review. Returns model.ErrReviewNotFound when absent.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
