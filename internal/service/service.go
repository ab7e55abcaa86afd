package service

import (
	"context"

	"storefront/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService defines account registration and session operations.
type AuthService interface {
	// Register creates an account and returns it with a signed token.
	Register(ctx context.Context, in model.RegisterInput) (*model.User, string, error)

	// Login verifies credentials and returns the account with a signed token.
	Login(ctx context.Context, in model.LoginInput) (*model.User, string, error)

	// Me retrieves the authenticated user's account.
	Me(ctx context.Context, userID string) (*model.User, error)

	// ForgotPassword acknowledges a password reset request for a known email.
	ForgotPassword(ctx context.Context, email string) error
}

// UserService defines profile, address and admin account operations.
type UserService interface {
	// GetProfile retrieves a user's account.
	GetProfile(ctx context.Context, userID string) (*model.User, error)

	// UpdateProfile applies non-empty profile fields and returns the account.
	UpdateProfile(ctx context.Context, userID string, in model.UpdateProfileInput) (*model.User, error)

	// UpdatePassword verifies the current password and stores a new hash.
	UpdatePassword(ctx context.Context, userID string, in model.UpdatePasswordInput) error

	// AddAddress appends a shipping address to the user's address book.
	AddAddress(ctx context.Context, userID string, in model.AddressInput) (*model.User, error)

	// UpdateAddress replaces an address identified by its id.
	UpdateAddress(ctx context.Context, userID, addressID string, in model.AddressInput) (*model.User, error)

	// DeleteAddress removes an address identified by its id.
	DeleteAddress(ctx context.Context, userID, addressID string) (*model.User, error)

	// List retrieves accounts newest-first with pagination. Admin only.
	List(ctx context.Context, page, limit int) ([]model.User, model.Pagination, error)

	// Get retrieves any account by id. Admin only.
	Get(ctx context.Context, id string) (*model.User, error)

	// Delete removes an account. Admin only.
	Delete(ctx context.Context, id string) error
}

// ProductService defines catalogue operations.
type ProductService interface {
	// List retrieves active products matching the filter with pagination.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, model.Pagination, error)

	// Get retrieves a single product.
	Get(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a new product. Admin only.
	Create(ctx context.Context, in model.ProductInput) (*model.Product, error)

	// Update replaces a product's editable fields. Admin only.
	Update(ctx context.Context, id string, in model.ProductInput) (*model.Product, error)

	// Delete removes a product. Admin only.
	Delete(ctx context.Context, id string) error
}

// CategoryService defines category tree operations.
type CategoryService interface {
	// List retrieves active categories sorted by name.
	List(ctx context.Context) ([]model.Category, error)

	// Get retrieves a category along with its direct subcategories.
	Get(ctx context.Context, id string) (*model.Category, []model.Category, error)

	// Create inserts a new category with a derived slug. Admin only.
	Create(ctx context.Context, in model.CategoryInput) (*model.Category, error)

	// Update replaces a category's fields, rederiving the slug when the name
	// changes. Admin only.
	Update(ctx context.Context, id string, in model.CategoryInput) (*model.Category, error)

	// Delete removes a category unless it still has products or
	// subcategories. Admin only.
	Delete(ctx context.Context, id string) error
}

// CartService defines shopping cart operations. Every method operates on the
// calling user's single cart.
type CartService interface {
	// Get retrieves the user's cart, creating an empty one on first access,
	// and refreshes the cached total from current product prices.
	Get(ctx context.Context, userID string) (*model.CartResponse, error)

	// AddItem merges a product line into the cart, checking inventory
	// against the cumulative quantity.
	AddItem(ctx context.Context, userID string, in model.AddCartItemInput) (*model.CartResponse, error)

	// UpdateItem sets a line's quantity, re-checking inventory.
	UpdateItem(ctx context.Context, userID, productID string, in model.UpdateCartItemInput) (*model.CartResponse, error)

	// RemoveItem drops a line from the cart.
	RemoveItem(ctx context.Context, userID, productID string) (*model.CartResponse, error)

	// Clear removes every line from the cart.
	Clear(ctx context.Context, userID string) error
}

// OrderService defines checkout and order management operations.
type OrderService interface {
	// PlaceOrder converts the user's cart into an immutable order snapshot,
	// decrements inventory and clears the cart.
	PlaceOrder(ctx context.Context, userID string, in model.PlaceOrderInput) (*model.Order, error)

	// ListOrders retrieves the caller's orders, or every order for admins.
	ListOrders(ctx context.Context, userID, role string) ([]model.Order, error)

	// GetOrder retrieves an order visible to its owner or an admin.
	GetOrder(ctx context.Context, userID, role, orderID string) (*model.Order, error)

	// UpdateStatus sets an order's status, stamping delivery on the
	// delivered status. Admin only.
	UpdateStatus(ctx context.Context, orderID string, in model.UpdateOrderStatusInput) (*model.Order, error)
}

// ReviewService defines product review operations.
type ReviewService interface {
	// ListByProduct retrieves a product's reviews newest-first with
	// pagination.
	ListByProduct(ctx context.Context, productID string, page, limit int) ([]model.Review, model.Pagination, error)

	// Create inserts the caller's review for a product and recomputes the
	// product's aggregate rating.
	Create(ctx context.Context, userID string, in model.CreateReviewInput) (*model.Review, error)

	// Update applies non-zero fields to the caller's own review and
	// recomputes the aggregate rating.
	Update(ctx context.Context, userID, reviewID string, in model.UpdateReviewInput) (*model.Review, error)

	// Delete removes a review owned by the caller, or any review for
	// admins, and recomputes the aggregate rating.
	Delete(ctx context.Context, userID, role, reviewID string) error
}

// PaymentIntent is the client-facing result of registering a payment with
// the processor.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
}

// PaymentService defines the payment processor integration.
type PaymentService interface {
	// CreateIntent registers a payment intent for an order owned by the
	// caller and returns the client secret.
	CreateIntent(ctx context.Context, userID, orderID string) (*PaymentIntent, error)

	// HandleWebhook verifies and applies a processor webhook event.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error

	// PublishableKey returns the processor's client-side key.
	PublishableKey() string
}

// parseObjectID converts a hex id from a path or token into an ObjectID.
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}
